package controllers

import (
	"quotation-backend/bleve/repositories"
)

// SearchController serves the global search box over the quotation and
// client indices.
type SearchController struct {
	repo *repositories.BleveRepository
}

func NewSearchController(repo *repositories.BleveRepository) *SearchController {
	return &SearchController{repo: repo}
}
