package web

import (
	"net/http"
)

func (h *handler) GetCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.Catalog.GetCategories(r.Context())
	if err != nil {
		respondError(w, r, err)
		return
	}

	out := make([]Category, 0, len(categories))
	for _, category := range categories {
		out = append(out, Category(category))
	}
	respondJSON(w, http.StatusOK, out)
}

func (h *handler) GetCities(w http.ResponseWriter, r *http.Request) {
	cities, err := h.Catalog.GetCities(r.Context())
	if err != nil {
		respondError(w, r, err)
		return
	}

	out := make([]City, 0, len(cities))
	for _, city := range cities {
		out = append(out, City(city))
	}
	respondJSON(w, http.StatusOK, out)
}
