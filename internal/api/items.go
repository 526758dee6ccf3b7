package api

import (
	"fmt"
	"net/http"

	"gopkg.in/guregu/null.v3"

	"github.com/erazemk/artikli/internal/model"
)

// ItemsHandler handles the /items endpoints. Each method runs inside the
// session opened by SessionMiddleware.
type ItemsHandler struct{}

// itemResponse is the single-item shape. It uses item_id where the list
// uses id; clients depend on both.
type itemResponse struct {
	ItemID  int64     `json:"item_id"`
	Name    string    `json:"name"`
	Price   float64   `json:"price"`
	IsOffer null.Bool `json:"is_offer"`
}

type upsertResponse struct {
	ItemName string `json:"item_name"`
	ItemID   int64  `json:"item_id"`
}

type messageResponse struct {
	Message string `json:"message"`
}

func notFoundMessage(id int64) string {
	return fmt.Sprintf("Item with id %d not found", id)
}

// List handles GET /items.
func (h *ItemsHandler) List(w http.ResponseWriter, r *http.Request) {
	items, err := GetSession(r.Context()).ListItems(r.Context())
	if err != nil {
		internalError(w, r, "failed to list items", err)
		return
	}
	if items == nil {
		items = []model.Item{}
	}
	jsonResponse(w, http.StatusOK, items)
}

// Get handles GET /items/{id}.
func (h *ItemsHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, fe := parseItemID(r)
	if fe != nil {
		validationError(w, []FieldError{*fe})
		return
	}

	item, err := GetSession(r.Context()).GetItem(r.Context(), id)
	if err != nil {
		internalError(w, r, "failed to get item", err)
		return
	}
	if item == nil {
		jsonError(w, http.StatusNotFound, notFoundMessage(id))
		return
	}

	jsonResponse(w, http.StatusOK, itemResponse{
		ItemID:  item.ID,
		Name:    item.Name,
		Price:   item.Price,
		IsOffer: item.IsOffer,
	})
}

// Update handles PUT /items/{id}. It creates the item when the id is new
// and overwrites it otherwise, so it never answers 404.
func (h *ItemsHandler) Update(w http.ResponseWriter, r *http.Request) {
	var errs []FieldError
	id, fe := parseItemID(r)
	if fe != nil {
		errs = append(errs, *fe)
	}
	in, bodyErrs := decodeItemInput(w, r)
	errs = append(errs, bodyErrs...)
	if len(errs) > 0 {
		validationError(w, errs)
		return
	}

	ctx := r.Context()
	sess := GetSession(ctx)

	existing, err := sess.GetItem(ctx, id)
	if err != nil {
		internalError(w, r, "failed to get item", err)
		return
	}
	if existing != nil {
		err = sess.UpdateItem(ctx, id, in)
	} else {
		err = sess.InsertItem(ctx, id, in)
	}
	if err != nil {
		internalError(w, r, "failed to save item", err)
		return
	}
	if err := sess.Commit(); err != nil {
		internalError(w, r, "failed to commit item", err)
		return
	}

	item, err := sess.RefreshItem(ctx, id)
	if err != nil {
		internalError(w, r, "failed to refresh item", err)
		return
	}
	if item == nil {
		// Deleted by a concurrent request after our commit.
		saved := in.Apply(model.Item{ID: id})
		item = &saved
	}

	jsonResponse(w, http.StatusOK, upsertResponse{ItemName: item.Name, ItemID: item.ID})
}

// Delete handles DELETE /items/{id}.
func (h *ItemsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, fe := parseItemID(r)
	if fe != nil {
		validationError(w, []FieldError{*fe})
		return
	}

	ctx := r.Context()
	sess := GetSession(ctx)

	item, err := sess.GetItem(ctx, id)
	if err != nil {
		internalError(w, r, "failed to get item", err)
		return
	}
	if item == nil {
		jsonError(w, http.StatusNotFound, notFoundMessage(id))
		return
	}

	if err := sess.DeleteItem(ctx, id); err != nil {
		internalError(w, r, "failed to delete item", err)
		return
	}
	if err := sess.Commit(); err != nil {
		internalError(w, r, "failed to commit delete", err)
		return
	}

	jsonResponse(w, http.StatusOK, messageResponse{
		Message: fmt.Sprintf("Item with id %d has been deleted", id),
	})
}
