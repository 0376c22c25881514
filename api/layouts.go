package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type layout struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Thumbnail   string `json:"thumbnail"`
}

var layouts = []layout{
	{
		ID:          "exclusive",
		Name:        "Exclusive",
		Description: "모던하고 세련된 디자인의 웨딩 페이지",
		Thumbnail:   "/layouts/exclusive.jpg",
	},
	{
		ID:          "classic",
		Name:        "Classic",
		Description: "전통적이고 우아한 디자인의 웨딩 페이지",
		Thumbnail:   "/layouts/classic.jpg",
	},
	{
		ID:          "minimal",
		Name:        "Minimal",
		Description: "심플하고 깔끔한 디자인의 웨딩 페이지",
		Thumbnail:   "/layouts/minimal.jpg",
	},
	{
		ID:          "magazine",
		Name:        "Magazine",
		Description: "화보 스타일의 웨딩 페이지",
		Thumbnail:   "/layouts/magazine.jpg",
	},
}

// Layouts lists the invitation themes the frontend can render.
func (a *API) Layouts(c *gin.Context) {
	c.JSON(http.StatusOK, layouts)
}
