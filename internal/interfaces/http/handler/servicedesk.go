package handler

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	servicedeskapp "github.com/isletme/backend/internal/application/servicedesk"
)

// ServiceRequestService is the ticket use case surface
type ServiceRequestService interface {
	crudService[servicedeskapp.ServiceRequestRequest, servicedeskapp.ServiceRequestResponse, servicedeskapp.ServiceRequestListFilter]
	Start(ctx context.Context, tenantID, id uuid.UUID) (*servicedeskapp.ServiceRequestResponse, error)
	Resolve(ctx context.Context, tenantID, id uuid.UUID, resolution string) (*servicedeskapp.ServiceRequestResponse, error)
	Close(ctx context.Context, tenantID, id uuid.UUID) (*servicedeskapp.ServiceRequestResponse, error)
	Cancel(ctx context.Context, tenantID, id uuid.UUID) (*servicedeskapp.ServiceRequestResponse, error)
}

// ServiceRequestHandler serves /service/requests
type ServiceRequestHandler struct {
	*crudHandler[servicedeskapp.ServiceRequestRequest, servicedeskapp.ServiceRequestResponse, servicedeskapp.ServiceRequestListFilter]
	requestService ServiceRequestService
}

// NewServiceRequestHandler creates a new ServiceRequestHandler
func NewServiceRequestHandler(requestService ServiceRequestService) *ServiceRequestHandler {
	crud := newCRUDHandler[servicedeskapp.ServiceRequestRequest, servicedeskapp.ServiceRequestResponse, servicedeskapp.ServiceRequestListFilter](requestService)
	crud.prepare = func(c *gin.Context, req *servicedeskapp.ServiceRequestRequest) {
		req.CreatedBy = createdBy(c)
	}
	return &ServiceRequestHandler{crudHandler: crud, requestService: requestService}
}

// Start moves an open ticket to in progress
func (h *ServiceRequestHandler) Start(c *gin.Context) {
	h.transition(c, func(ctx context.Context, tenantID, id uuid.UUID) (any, error) {
		return h.requestService.Start(ctx, tenantID, id)
	})
}

// Resolve records the resolution of a ticket. The body is optional.
func (h *ServiceRequestHandler) Resolve(c *gin.Context) {
	var req servicedeskapp.ResolveRequest
	if c.Request.ContentLength != 0 && !h.bindJSON(c, &req) {
		return
	}
	h.transition(c, func(ctx context.Context, tenantID, id uuid.UUID) (any, error) {
		return h.requestService.Resolve(ctx, tenantID, id, req.Resolution)
	})
}

// Close closes a resolved ticket
func (h *ServiceRequestHandler) Close(c *gin.Context) {
	h.transition(c, func(ctx context.Context, tenantID, id uuid.UUID) (any, error) {
		return h.requestService.Close(ctx, tenantID, id)
	})
}

// Cancel cancels a ticket that is not finished
func (h *ServiceRequestHandler) Cancel(c *gin.Context) {
	h.transition(c, func(ctx context.Context, tenantID, id uuid.UUID) (any, error) {
		return h.requestService.Cancel(ctx, tenantID, id)
	})
}

// TaskService is the task use case surface
type TaskService interface {
	crudService[servicedeskapp.TaskRequest, servicedeskapp.TaskResponse, servicedeskapp.TaskListFilter]
	Complete(ctx context.Context, tenantID, id uuid.UUID) (*servicedeskapp.TaskResponse, error)
}

// TaskHandler serves /service/tasks
type TaskHandler struct {
	*crudHandler[servicedeskapp.TaskRequest, servicedeskapp.TaskResponse, servicedeskapp.TaskListFilter]
	taskService TaskService
}

// NewTaskHandler creates a new TaskHandler
func NewTaskHandler(taskService TaskService) *TaskHandler {
	crud := newCRUDHandler[servicedeskapp.TaskRequest, servicedeskapp.TaskResponse, servicedeskapp.TaskListFilter](taskService)
	crud.prepare = func(c *gin.Context, req *servicedeskapp.TaskRequest) {
		req.CreatedBy = createdBy(c)
	}
	return &TaskHandler{crudHandler: crud, taskService: taskService}
}

// Complete marks a task as done
func (h *TaskHandler) Complete(c *gin.Context) {
	h.transition(c, func(ctx context.Context, tenantID, id uuid.UUID) (any, error) {
		return h.taskService.Complete(ctx, tenantID, id)
	})
}
