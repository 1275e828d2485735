package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/kdsprimark-ship-it/shipdesk/internal/domain"
	"github.com/kdsprimark-ship-it/shipdesk/internal/repo"
)

// CollectionHandler exposes one entity collection as CRUD endpoints. Update
// binds the request body over a copy of the current record, so callers may
// send partial documents; omitted fields keep their stored values.
type CollectionHandler[T domain.Entity[T]] struct {
	repo     *repo.Repository[T]
	validate func(*T) error
	prepare  func(*T)
}

// NewCollectionHandler creates a handler over r.
func NewCollectionHandler[T domain.Entity[T]](r *repo.Repository[T]) *CollectionHandler[T] {
	return &CollectionHandler[T]{repo: r}
}

// WithValidation installs a validation hook run before Create and Update.
func (h *CollectionHandler[T]) WithValidation(fn func(*T) error) *CollectionHandler[T] {
	h.validate = fn
	return h
}

// WithPrepare installs a hook that finalizes a record before it is written,
// e.g. recomputing derived amounts.
func (h *CollectionHandler[T]) WithPrepare(fn func(*T)) *CollectionHandler[T] {
	h.prepare = fn
	return h
}

// Register mounts the CRUD routes under rg at path.
func (h *CollectionHandler[T]) Register(rg *gin.RouterGroup, path string) {
	rg.GET(path, h.List)
	rg.GET(path+"/:id", h.Get)
	rg.POST(path, h.Create)
	rg.PUT(path+"/:id", h.Update)
	rg.PATCH(path+"/:id", h.Update)
	rg.DELETE(path+"/:id", h.Delete)
}

// List returns the collection in display order.
func (h *CollectionHandler[T]) List(c *gin.Context) {
	RespondOK(c, h.repo.List())
}

// Get returns one record by id.
func (h *CollectionHandler[T]) Get(c *gin.Context) {
	item, err := h.repo.Get(c.Param("id"))
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, item)
}

// Create inserts a record optimistically and confirms it remotely.
func (h *CollectionHandler[T]) Create(c *gin.Context) {
	var item T
	if err := c.ShouldBindJSON(&item); err != nil {
		RespondError(c, 400, "INVALID_BODY", err.Error())
		return
	}
	if h.validate != nil {
		if err := h.validate(&item); err != nil {
			HandleError(c, err)
			return
		}
	}
	if h.prepare != nil {
		h.prepare(&item)
	}

	added, err := h.repo.Add(c.Request.Context(), item)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondCreated(c, added)
}

// Update patches a record: the body is bound over the current record and the
// merged result replaces it.
func (h *CollectionHandler[T]) Update(c *gin.Context) {
	id := c.Param("id")
	current, err := h.repo.Get(id)
	if err != nil {
		HandleError(c, err)
		return
	}

	if err := c.ShouldBindJSON(&current); err != nil {
		RespondError(c, 400, "INVALID_BODY", err.Error())
		return
	}
	if h.validate != nil {
		if err := h.validate(&current); err != nil {
			HandleError(c, err)
			return
		}
	}
	if h.prepare != nil {
		h.prepare(&current)
	}

	updated, err := h.repo.Update(c.Request.Context(), id, current)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, updated)
}

// Delete removes a record.
func (h *CollectionHandler[T]) Delete(c *gin.Context) {
	if err := h.repo.Delete(c.Request.Context(), c.Param("id")); err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, gin.H{"deleted": c.Param("id")})
}

// ValidateBusinessEntity rejects unknown registry types.
func ValidateBusinessEntity(e *domain.BusinessEntity) error {
	if !domain.ValidEntityTypes[e.Type] {
		return domain.ErrInvalidEntityType
	}
	return nil
}

// ValidatePriceRate rejects unknown rate conditions.
func ValidatePriceRate(r *domain.PriceRate) error {
	if !domain.ValidRateConditions[r.Condition] {
		return domain.ErrInvalidCondition
	}
	return nil
}
