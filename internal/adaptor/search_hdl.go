package adaptor

import (
	"net/http"

	"hotel-booking/internal/dto/request"
	"hotel-booking/internal/usecase"
	"hotel-booking/pkg/utils"

	"go.uber.org/zap"
)

type SearchHandler struct {
	service usecase.SearchService
	log     *zap.Logger
}

func NewSearchHandler(service usecase.SearchService, log *zap.Logger) *SearchHandler {
	return &SearchHandler{
		service: service,
		log:     log.With(zap.String("handler", "search")),
	}
}

// Search handles GET /search/ (public)
func (h *SearchHandler) Search(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	req := request.SearchRequest{
		Location: query.Get("location"),
		CheckIn:  query.Get("check_in"),
		CheckOut: query.Get("check_out"),
	}

	fields := make(map[string]string)
	for _, p := range []struct {
		name string
		def  int
		dst  *int
	}{
		{"adults", 1, &req.Adults},
		{"children", 0, &req.Children},
		{"rooms", 1, &req.Rooms},
	} {
		v, err := utils.ParseQueryInt(query.Get(p.name), p.def)
		if err != nil {
			fields[p.name] = "Must be a whole number"
			continue
		}
		*p.dst = v
	}
	if len(fields) > 0 {
		h.log.Warn("Search rejected - malformed query", zap.Any("errors", fields))
		utils.ResponseBadRequest(w, "Validation failed", fields)
		return
	}

	results, err := h.service.Search(r.Context(), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "search hotels")
		return
	}

	utils.ResponseSuccess(w, results)
}
