package api

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/pourover/drinks-api/internal/api/shared"
	"github.com/pourover/drinks-api/internal/domain"
	"github.com/pourover/drinks-api/internal/platform/logger"
	"github.com/pourover/drinks-api/internal/redact"
	"github.com/pourover/drinks-api/internal/store"
)

// Permission claims required by the gated drink endpoints.
const (
	PermissionReadDetail = "get:drinks-detail"
	PermissionCreate     = "post:drinks"
	PermissionUpdate     = "patch:drinks"
	PermissionDelete     = "delete:drinks"
)

// IngredientPayload is one recipe entry on the wire.
type IngredientPayload struct {
	Color string  `json:"color"`
	Parts float64 `json:"parts"`
}

// CreateDrinkRequest represents the request body for creating a drink.
// Title and recipe are deliberately unvalidated here: missing values pass
// through to the store, where the NOT NULL and UNIQUE constraints decide.
type CreateDrinkRequest struct {
	Title  *string             `json:"title"`
	Recipe []IngredientPayload `json:"recipe"`
}

// UpdateDrinkRequest represents the request body for updating a drink.
// Title is required even for a partial update; a recipe, when present,
// replaces the stored recipe wholesale.
type UpdateDrinkRequest struct {
	Title  *string             `json:"title"  validate:"required"`
	Recipe []IngredientPayload `json:"recipe"`
}

// DrinkResponse represents one drink in a response body.
type DrinkResponse struct {
	ID     int64               `json:"id"`
	Title  string              `json:"title"`
	Recipe []IngredientPayload `json:"recipe"`
}

// DrinksResponse is the success envelope of the list, detail, create, and
// update endpoints.
type DrinksResponse struct {
	Success bool            `json:"success"`
	Drinks  []DrinkResponse `json:"drinks"`
}

// DeleteDrinkResponse is the success envelope of the delete endpoint.
type DeleteDrinkResponse struct {
	Success bool  `json:"success"`
	Deleted int64 `json:"deleted"`
}

// DrinkHandler handles drink-related HTTP requests
type DrinkHandler struct {
	drinkStore store.DrinkStore
	logger     *slog.Logger
}

// NewDrinkHandler creates a new DrinkHandler
func NewDrinkHandler(drinkStore store.DrinkStore, log *slog.Logger) *DrinkHandler {
	if log == nil {
		log = slog.Default()
	}

	return &DrinkHandler{
		drinkStore: drinkStore,
		logger:     log.With(slog.String("component", "drink_handler")),
	}
}

// ListDrinks handles GET /drinks requests. Public endpoint: the response
// uses the short drink representation with masked recipe quantities.
func (h *DrinkHandler) ListDrinks(w http.ResponseWriter, r *http.Request) {
	drinks, err := h.drinkStore.List(r.Context())
	if err != nil {
		RespondWithMappedError(w, r, err)
		return
	}

	response := DrinksResponse{Success: true, Drinks: make([]DrinkResponse, 0, len(drinks))}
	for _, drink := range drinks {
		response.Drinks = append(response.Drinks, drinkToResponse(drink.Short()))
	}

	shared.RespondWithJSON(w, r, http.StatusOK, response)
}

// ListDrinksDetail handles GET /drinks-detail requests. Requires the
// get:drinks-detail permission; the response uses the long representation.
func (h *DrinkHandler) ListDrinksDetail(w http.ResponseWriter, r *http.Request) {
	drinks, err := h.drinkStore.List(r.Context())
	if err != nil {
		RespondWithMappedError(w, r, err)
		return
	}

	response := DrinksResponse{Success: true, Drinks: make([]DrinkResponse, 0, len(drinks))}
	for _, drink := range drinks {
		response.Drinks = append(response.Drinks, drinkToResponse(drink.Long()))
	}

	shared.RespondWithJSON(w, r, http.StatusOK, response)
}

// CreateDrink handles POST /drinks requests. Requires the post:drinks
// permission. An absent request body is unprocessable before any field
// handling; missing fields are passed through so the storage constraints
// produce the rejection.
func (h *DrinkHandler) CreateDrink(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	var req CreateDrinkRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		if err == shared.ErrEmptyBody {
			log.Debug("create request without body")
			shared.RespondWithError(w, r, http.StatusUnprocessableEntity, MsgUnprocessable)
			return
		}
		log.Warn("invalid create request format", slog.String("error", redact.Error(err)))
		shared.RespondWithError(w, r, http.StatusBadRequest, MsgBadRequest)
		return
	}

	var title string
	if req.Title != nil {
		title = *req.Title
	}
	drink := domain.NewDrink(title, ingredientsFromPayload(req.Recipe))

	if err := h.drinkStore.Insert(r.Context(), drink); err != nil {
		// Any storage rejection during create is unprocessable.
		shared.RespondWithErrorAndLog(w, r, http.StatusUnprocessableEntity, MsgUnprocessable, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, DrinksResponse{
		Success: true,
		Drinks:  []DrinkResponse{drinkToResponse(drink.Long())},
	})
}

// UpdateDrink handles PATCH /drinks/{id} requests. Requires the
// patch:drinks permission. An unknown id is a 404 before any field
// validation; a missing title is a 400; a present recipe replaces the
// stored one wholesale, an absent recipe preserves it.
func (h *DrinkHandler) UpdateDrink(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	id, ok := drinkIDFromPath(w, r)
	if !ok {
		return
	}

	var req UpdateDrinkRequest
	if err := shared.DecodeJSON(r, &req); err != nil && err != shared.ErrEmptyBody {
		log.Warn("invalid update request format",
			slog.String("error", redact.Error(err)),
			slog.Int64("drink_id", id))
		shared.RespondWithError(w, r, http.StatusBadRequest, MsgBadRequest)
		return
	}

	drink, err := h.drinkStore.GetByID(r.Context(), id)
	if err != nil {
		RespondWithMappedError(w, r, err)
		return
	}

	if err := shared.Validate.Struct(req); err != nil {
		log.Debug("update request missing title", slog.Int64("drink_id", id))
		shared.RespondWithError(w, r, http.StatusBadRequest, MsgBadRequest)
		return
	}

	drink.Title = *req.Title
	if req.Recipe != nil {
		drink.Recipe = ingredientsFromPayload(req.Recipe)
	}

	if err := h.drinkStore.Update(r.Context(), drink); err != nil {
		if store.IsNotFoundError(err) {
			RespondWithMappedError(w, r, err)
			return
		}
		shared.RespondWithErrorAndLog(w, r, http.StatusUnprocessableEntity, MsgUnprocessable, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, DrinksResponse{
		Success: true,
		Drinks:  []DrinkResponse{drinkToResponse(drink.Long())},
	})
}

// DeleteDrink handles DELETE /drinks/{id} requests. Requires the
// delete:drinks permission. The row is removed permanently.
func (h *DrinkHandler) DeleteDrink(w http.ResponseWriter, r *http.Request) {
	id, ok := drinkIDFromPath(w, r)
	if !ok {
		return
	}

	if _, err := h.drinkStore.GetByID(r.Context(), id); err != nil {
		RespondWithMappedError(w, r, err)
		return
	}

	if err := h.drinkStore.Delete(r.Context(), id); err != nil {
		if store.IsNotFoundError(err) {
			RespondWithMappedError(w, r, err)
			return
		}
		shared.RespondWithErrorAndLog(w, r, http.StatusUnprocessableEntity, MsgUnprocessable, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, DeleteDrinkResponse{
		Success: true,
		Deleted: id,
	})
}

// drinkIDFromPath extracts the {id} route parameter. The route pattern
// restricts it to digits, so a parse failure is a resource that cannot
// exist: respond 404 like any other unknown id.
func drinkIDFromPath(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		shared.RespondWithError(w, r, http.StatusNotFound, MsgNotFound)
		return 0, false
	}
	return id, true
}

// drinkToResponse converts a domain.Drink to a DrinkResponse
func drinkToResponse(drink *domain.Drink) DrinkResponse {
	recipe := make([]IngredientPayload, 0, len(drink.Recipe))
	for _, ing := range drink.Recipe {
		recipe = append(recipe, IngredientPayload{Color: ing.Color, Parts: ing.Parts})
	}

	return DrinkResponse{
		ID:     drink.ID,
		Title:  drink.Title,
		Recipe: recipe,
	}
}

// ingredientsFromPayload converts wire recipe entries to domain ingredients.
// A nil payload stays nil so callers can distinguish "absent" from "empty".
func ingredientsFromPayload(payload []IngredientPayload) []domain.Ingredient {
	if payload == nil {
		return nil
	}

	recipe := make([]domain.Ingredient, 0, len(payload))
	for _, ing := range payload {
		recipe = append(recipe, domain.Ingredient{Color: ing.Color, Parts: ing.Parts})
	}
	return recipe
}
