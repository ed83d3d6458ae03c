// Package printing turns page layouts into HTML and renders that HTML to
// PDF with headless Chrome.
//
//	emitter := NewHTMLEmitter()
//	html, err := emitter.Render(layout, "TKF-202501-00001")
//	...
//	result, err := renderer.Render(ctx, &RenderRequest{
//	    HTML:        html,
//	    PaperSize:   layout.Page.PaperSize,
//	    Orientation: layout.Page.Orientation,
//	})
package printing
