package handler

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgconn"

	"hvac-office-api/internal/audit"
	"hvac-office-api/internal/storage"
	"hvac-office-api/internal/store"
)

type Handler struct {
	store  *store.Store
	audit  *audit.Recorder
	files  storage.Storage
	secret string
}

func New(st *store.Store, files storage.Storage, secret string) *Handler {
	return &Handler{
		store:  st,
		audit:  audit.NewRecorder(st),
		files:  files,
		secret: secret,
	}
}

func pathID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusNotFound, gin.H{"detail": "not found"})
		return 0, false
	}
	return id, true
}

func badRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, gin.H{"detail": msg})
}

// fail maps store errors onto the response taxonomy: missing rows to
// 404, scheduling conflicts and constraint violations to 400,
// everything else to an opaque 500.
func fail(c *gin.Context, err error) {
	var conflict *store.ConflictError
	if errors.As(err, &conflict) {
		badRequest(c, conflict.Error())
		return
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23503": // foreign key
			badRequest(c, "referenced record does not exist")
			return
		case "23505": // unique
			badRequest(c, "duplicate value violates a unique constraint")
			return
		case "23514": // check
			badRequest(c, "value violates a check constraint")
			return
		}
	}

	if errors.Is(err, store.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"detail": "not found"})
		return
	}

	log.Printf("%s %s: %v", c.Request.Method, c.Request.URL.Path, err)
	c.JSON(http.StatusInternalServerError, gin.H{"detail": "internal error"})
}

// emptyIf keeps list responses as [] instead of null.
func emptyIf[T any](xs []T) []T {
	if xs == nil {
		return []T{}
	}
	return xs
}
