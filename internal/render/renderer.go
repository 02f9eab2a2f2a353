package render

import "context"

type Renderer interface {
	RenderPage(ctx context.Context, page PageView) ([]byte, error)
	RenderListing(ctx context.Context, listing ListingView) ([]byte, error)
}
