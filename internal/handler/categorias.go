package handler

import (
	"net/http"

	"correcaja/internal/model"

	"github.com/gin-gonic/gin"
)

// CategoriaItem is a metadata table row plus its id.
type CategoriaItem struct {
	ID string `json:"id"`
	model.InfoCategoria
}

// Categorias GET /v1/categorias — serves the static operation category
// table so the mobile client renders labels, icons and field requirements
// without hardcoding them.
func Categorias(c *gin.Context) {
	items := make([]CategoriaItem, 0, len(model.CategoriasOrdenadas))
	for _, id := range model.CategoriasOrdenadas {
		info := model.Categorias[id]
		items = append(items, CategoriaItem{ID: string(id), InfoCategoria: info})
	}
	c.JSON(http.StatusOK, items)
}
