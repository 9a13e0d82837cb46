package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/example/shoe-store/internal/api/middleware"
	"github.com/example/shoe-store/internal/domain/cart"
	"github.com/example/shoe-store/internal/domain/catalog"
	"github.com/example/shoe-store/internal/session"
	"go.uber.org/zap"
)

const (
	msgChooseSize      = "Please choose a size!"
	msgInvalidQuantity = "Please enter a valid quantity!"
	msgOutOfStock      = "This item is out of stock in the selected size!"
	msgItemRemoved     = "Item removed from cart"
	msgCartCleared     = "Cart cleared"
)

// EventPublisher sends activity events. Publishing is best-effort.
type EventPublisher interface {
	Publish(ctx context.Context, key string, event any) error
}

// pages holds what every storefront handler needs to answer a request.
type pages struct {
	sessions *session.Manager
	renderer Renderer
	events   EventPublisher
	logger   *zap.Logger
}

func (p *pages) layout(r *http.Request, sess *session.Session) Layout {
	return Layout{
		Username:  middleware.GetUsername(r.Context()),
		Messages:  sess.PopFlashes(),
		CartCount: sess.Cart.Len(),
	}
}

// render commits the session and writes the page as HTML, or as JSON when
// the client asks for it.
func (p *pages) render(w http.ResponseWriter, r *http.Request, sess *session.Session, status int, name string, data any) {
	if err := p.sessions.Commit(w, r, sess); err != nil {
		p.serverError(w, r, fmt.Errorf("commit session: %w", err))
		return
	}
	if wantsJSON(r) {
		respondJSON(w, status, data)
		return
	}
	if err := p.renderer.Render(w, status, name, data); err != nil {
		p.serverError(w, r, fmt.Errorf("render %s: %w", name, err))
	}
}

func (p *pages) redirect(w http.ResponseWriter, r *http.Request, sess *session.Session, to string) {
	if err := p.sessions.Commit(w, r, sess); err != nil {
		p.serverError(w, r, fmt.Errorf("commit session: %w", err))
		return
	}
	http.Redirect(w, r, to, http.StatusFound)
}

func (p *pages) notFound(w http.ResponseWriter, r *http.Request, sess *session.Session) {
	p.render(w, r, sess, http.StatusNotFound, "not_found.html", NotFoundPage{
		Layout:  p.layout(r, sess),
		Message: "Page not found",
	})
}

func (p *pages) serverError(w http.ResponseWriter, r *http.Request, err error) {
	p.logger.Error("request failed",
		zap.String("method", r.Method),
		zap.String("path", r.URL.Path),
		zap.Error(err))
	if wantsJSON(r) {
		respondJSONError(w, "internal server error", http.StatusInternalServerError)
		return
	}
	http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
}

// postForm parses the request body. A malformed body is logged and read as
// an empty form, so the handler's own validation rejects it.
func (p *pages) postForm(r *http.Request) url.Values {
	if err := r.ParseForm(); err != nil {
		p.logger.Info("malformed form body", zap.String("path", r.URL.Path), zap.Error(err))
		return url.Values{}
	}
	return r.PostForm
}

func (p *pages) publish(ctx context.Context, key string, event any) {
	if err := p.events.Publish(ctx, key, event); err != nil {
		p.logger.Warn("publish event", zap.String("key", key), zap.Error(err))
	}
}

// currentSession returns the session attached by session.Manager. Routes
// are always wrapped by its middleware, so a missing session is a wiring bug.
func currentSession(r *http.Request) *session.Session {
	sess, ok := session.FromContext(r.Context())
	if !ok {
		panic("api: request has no session")
	}
	return sess
}

// Handlers serves the catalog and cart pages.
type Handlers struct {
	pages
	catalog catalog.Repository
}

func NewHandlers(repo catalog.Repository, sessions *session.Manager, renderer Renderer, events EventPublisher, logger *zap.Logger) *Handlers {
	return &Handlers{
		pages: pages{
			sessions: sessions,
			renderer: renderer,
			events:   events,
			logger:   logger,
		},
		catalog: repo,
	}
}

// Catalog Handlers

func (h *Handlers) Home(w http.ResponseWriter, r *http.Request) {
	sess := currentSession(r)
	ctx := r.Context()

	latest, err := h.catalog.LatestShoes(ctx, catalog.Filter{}, catalog.HomeLatestLimit)
	if err != nil {
		h.serverError(w, r, err)
		return
	}
	winter, err := h.catalog.LatestShoes(ctx, catalog.WinterShoes(), catalog.HomeSeasonalLimit)
	if err != nil {
		h.serverError(w, r, err)
		return
	}
	summer, err := h.catalog.LatestShoes(ctx, catalog.SummerShoes(), catalog.HomeSeasonalLimit)
	if err != nil {
		h.serverError(w, r, err)
		return
	}

	h.render(w, r, sess, http.StatusOK, "home.html", HomePage{
		Layout:      h.layout(r, sess),
		LatestShoes: latest,
		WinterShoes: winter,
		SummerShoes: summer,
	})
}

func (h *Handlers) Catalog(w http.ResponseWriter, r *http.Request) {
	sess := currentSession(r)
	ctx := r.Context()
	q := r.URL.Query()

	filter := catalog.ParseFilter(q)
	page, err := h.catalog.ListShoes(ctx, filter, catalog.ParsePageNumber(q.Get("page")))
	if err != nil {
		h.serverError(w, r, err)
		return
	}
	categories, err := h.catalog.ListCategories(ctx)
	if err != nil {
		h.serverError(w, r, err)
		return
	}
	brands, err := h.catalog.ListBrands(ctx)
	if err != nil {
		h.serverError(w, r, err)
		return
	}

	h.render(w, r, sess, http.StatusOK, "catalog.html", CatalogPage{
		Layout:           h.layout(r, sess),
		Page:             page,
		Categories:       categories,
		Brands:           brands,
		Genders:          genderChoices,
		Seasons:          seasonChoices,
		SearchQuery:      q.Get("q"),
		SelectedGender:   q.Get("gender"),
		SelectedSeason:   q.Get("season"),
		SelectedSize:     q.Get("size"),
		SelectedCategory: q.Get("category"),
		SelectedBrand:    q.Get("brand"),
		FilterQuery:      filterQuery(q),
	})
}

// filterQuery drops the page parameter and empty values.
func filterQuery(q url.Values) string {
	out := url.Values{}
	for _, key := range []string{"q", "gender", "season", "size", "category", "brand"} {
		if v := q.Get(key); v != "" {
			out.Set(key, v)
		}
	}
	return out.Encode()
}

func (h *Handlers) ShoeDetail(w http.ResponseWriter, r *http.Request) {
	sess := currentSession(r)

	shoe, ok := h.lookupShoe(w, r, sess)
	if !ok {
		return
	}

	h.render(w, r, sess, http.StatusOK, "shoe_detail.html", ShoeDetailPage{
		Layout:         h.layout(r, sess),
		Shoe:           shoe,
		AvailableSizes: shoe.AvailableSizes(),
	})
}

// lookupShoe resolves the {shoeID} or {id} path value. It answers 404 or
// 500 itself and reports whether the handler may go on.
func (h *Handlers) lookupShoe(w http.ResponseWriter, r *http.Request, sess *session.Session) (*catalog.Shoe, bool) {
	raw := r.PathValue("shoeID")
	if raw == "" {
		raw = r.PathValue("id")
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		h.notFound(w, r, sess)
		return nil, false
	}

	shoe, err := h.catalog.GetShoe(r.Context(), id)
	if err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			h.notFound(w, r, sess)
			return nil, false
		}
		h.serverError(w, r, err)
		return nil, false
	}
	return shoe, true
}

// Cart Handlers

func (h *Handlers) GetCart(w http.ResponseWriter, r *http.Request) {
	sess := currentSession(r)

	items, err := sess.Cart.Items(r.Context(), h.catalog)
	if err != nil {
		h.serverError(w, r, err)
		return
	}

	h.render(w, r, sess, http.StatusOK, "cart.html", CartPage{
		Layout:     h.layout(r, sess),
		Items:      items,
		TotalPrice: cart.Sum(items),
	})
}

func (h *Handlers) AddToCart(w http.ResponseWriter, r *http.Request) {
	sess := currentSession(r)
	ctx := r.Context()

	shoe, ok := h.lookupShoe(w, r, sess)
	if !ok {
		return
	}
	detailURL := fmt.Sprintf("/shoe/%d/", shoe.ID)

	form := h.postForm(r)

	rawSize := form.Get("size")
	size, err := catalog.ParseSize(rawSize)
	if rawSize == "" || err != nil {
		sess.AddFlash(session.LevelError, msgChooseSize)
		h.redirect(w, r, sess, detailURL)
		return
	}

	quantity := 1
	if raw := form.Get("quantity"); raw != "" {
		quantity, err = strconv.Atoi(raw)
		if err != nil || quantity < 1 || quantity > cart.MaxLineQuantity {
			sess.AddFlash(session.LevelError, msgInvalidQuantity)
			h.redirect(w, r, sess, detailURL)
			return
		}
	}

	shoeSize, err := h.catalog.GetShoeSize(ctx, shoe.ID, size)
	switch {
	case errors.Is(err, catalog.ErrNotFound) || (err == nil && !shoeSize.InStock()):
		sess.AddFlash(session.LevelError, msgOutOfStock)
		h.redirect(w, r, sess, "/cart/")
		return
	case err != nil:
		h.serverError(w, r, err)
		return
	}

	err = sess.UpdateCart(func(c *cart.Cart) error {
		return c.Add(shoe.ID, size, quantity)
	})
	switch {
	case errors.Is(err, cart.ErrInvalidQuantity):
		sess.AddFlash(session.LevelError, msgInvalidQuantity)
		h.redirect(w, r, sess, detailURL)
		return
	case err != nil:
		h.serverError(w, r, err)
		return
	}
	sess.AddFlash(session.LevelSuccess,
		fmt.Sprintf("%s (size %s) added to cart!", shoe.Name, catalog.FormatSize(size)))

	h.publish(ctx, sess.ID, cart.ItemAdded{
		SessionID: sess.ID,
		UserID:    middleware.GetUserID(ctx),
		ShoeID:    shoe.ID,
		Size:      size,
		Quantity:  quantity,
		AddedAt:   timeNow(),
	})

	h.redirect(w, r, sess, "/cart/")
}

// RemoveFromCart deletes one line. Unknown lines and unparsable ids or
// sizes are ignored.
func (h *Handlers) RemoveFromCart(w http.ResponseWriter, r *http.Request) {
	sess := currentSession(r)
	ctx := r.Context()

	shoeID, idErr := strconv.ParseInt(r.PathValue("shoeID"), 10, 64)
	size, sizeErr := catalog.ParseSize(r.PathValue("size"))
	if idErr == nil && sizeErr == nil {
		removed := false
		_ = sess.UpdateCart(func(c *cart.Cart) error {
			removed = c.Remove(shoeID, size)
			return nil
		})
		if removed {
			h.publish(ctx, sess.ID, cart.ItemRemoved{
				SessionID: sess.ID,
				UserID:    middleware.GetUserID(ctx),
				ShoeID:    shoeID,
				Size:      size,
				RemovedAt: timeNow(),
			})
		}
	}

	sess.AddFlash(session.LevelInfo, msgItemRemoved)
	h.redirect(w, r, sess, "/cart/")
}

func (h *Handlers) ClearCart(w http.ResponseWriter, r *http.Request) {
	sess := currentSession(r)
	ctx := r.Context()

	hadItems := sess.Cart.Len() > 0
	_ = sess.UpdateCart(func(c *cart.Cart) error {
		c.Clear()
		return nil
	})
	if hadItems {
		h.publish(ctx, sess.ID, cart.Cleared{
			SessionID: sess.ID,
			UserID:    middleware.GetUserID(ctx),
			ClearedAt: timeNow(),
		})
	}

	sess.AddFlash(session.LevelInfo, msgCartCleared)
	h.redirect(w, r, sess, "/cart/")
}
