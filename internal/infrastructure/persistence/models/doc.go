// Package models contains GORM persistence models. Domain entities carry no
// ORM tags; each model here maps one table and converts to and from its
// domain entity with ToDomain / FromDomain.
package models
