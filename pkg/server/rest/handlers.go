package rest

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	enTranslations "github.com/go-playground/validator/v10/translations/en"

	"github.com/pathpilot/pathpilot/pkg/datastructure"
	"github.com/pathpilot/pathpilot/pkg/server"
)

type NavigationService interface {
	Route(ctx context.Context, srcLat, srcLon, dstLat, dstLon float64,
		weight datastructure.WeightKey, k int) ([]datastructure.RouteAlternative, error)
	SimulateTraffic(ctx context.Context, intensity string) error
	GraphBounds(ctx context.Context) (datastructure.GraphBounds, error)
	NearestStreets(ctx context.Context, lat, lon float64) ([]datastructure.NearbyStreet, error)
}

type NavigationHandler struct {
	svc NavigationService
}

func NavigatorRouter(r *chi.Mux, svc NavigationService, m *Metrics) {
	handler := &NavigationHandler{svc}

	r.Group(func(r chi.Router) {
		r.Route("/api/navigation", func(r chi.Router) {
			r.Post("/route", handler.Route)
			r.Post("/traffic/simulate", handler.SimulateTraffic)
			r.Get("/graph/bounds", handler.GraphBounds)
			r.Post("/nearest-streets", handler.NearestStreets)
		})
	})
}

type RouteRequest struct {
	SrcLat float64 `json:"src_lat" validate:"required,lt=90,gt=-90"`
	SrcLon float64 `json:"src_lon" validate:"required,lt=180,gt=-180"`
	DstLat float64 `json:"dst_lat" validate:"required,lt=90,gt=-90"`
	DstLon float64 `json:"dst_lon" validate:"required,lt=180,gt=-180"`
	Weight string  `json:"weight" validate:"omitempty,oneof=length weight_time"`
	K      int     `json:"k" validate:"omitempty,gte=1,lte=5"`
}

func (s *RouteRequest) Bind(r *http.Request) error {
	if s.SrcLat == 0 && s.SrcLon == 0 && s.DstLat == 0 && s.DstLon == 0 {
		return errors.New("invalid request")
	}
	if s.Weight == "" {
		s.Weight = string(datastructure.WeightKeyLength)
	}
	if s.K == 0 {
		s.K = 3
	}
	return nil
}

type RouteResponse struct {
	Routes []RouteAlternativeResponse `json:"routes"`
}

type RouteAlternativeResponse struct {
	Polyline       string                     `json:"polyline"`
	Coordinates    []datastructure.Coordinate `json:"coordinates"`
	DistanceMeters float64                    `json:"distance_meters"`
	Label          string                     `json:"label"`
	Instructions   []string                   `json:"instructions"`
	NodesVisited   int                        `json:"nodes_visited"`
}

func RenderRouteResponse(alternatives []datastructure.RouteAlternative) *RouteResponse {
	routes := make([]RouteAlternativeResponse, 0, len(alternatives))
	for _, alt := range alternatives {
		routes = append(routes, RouteAlternativeResponse{
			Polyline:       alt.Polyline,
			Coordinates:    alt.Coords,
			DistanceMeters: alt.DistanceMeters,
			Label:          alt.Label,
			Instructions:   alt.Instructions,
			NodesVisited:   alt.NodesVisited,
		})
	}
	return &RouteResponse{Routes: routes}
}

func (h *NavigationHandler) Route(w http.ResponseWriter, r *http.Request) {
	data := &RouteRequest{}
	if err := render.Bind(r, data); err != nil {
		render.Render(w, r, ErrInvalidRequest(err))
		return
	}
	validate := validator.New()
	if err := validate.Struct(*data); err != nil {
		english := en.New()
		uni := ut.New(english, english)
		trans, _ := uni.GetTranslator("en")
		_ = enTranslations.RegisterDefaultTranslations(validate, trans)
		vv := translateError(err, trans)
		render.Render(w, r, ErrValidation(err, vv))
		return
	}

	alternatives, err := h.svc.Route(r.Context(), data.SrcLat, data.SrcLon,
		data.DstLat, data.DstLon, datastructure.WeightKey(data.Weight), data.K)
	if err != nil {
		render.Render(w, r, serviceErrRenderer(err))
		return
	}

	render.Status(r, http.StatusOK)
	render.JSON(w, r, RenderRouteResponse(alternatives))
}

type SimulateTrafficRequest struct {
	Intensity string `json:"intensity" validate:"required,oneof=low medium high"`
}

func (s *SimulateTrafficRequest) Bind(r *http.Request) error {
	if s.Intensity == "" {
		return errors.New("invalid request")
	}
	return nil
}

type SimulateTrafficResponse struct {
	Status string `json:"status"`
}

func (h *NavigationHandler) SimulateTraffic(w http.ResponseWriter, r *http.Request) {
	data := &SimulateTrafficRequest{}
	if err := render.Bind(r, data); err != nil {
		render.Render(w, r, ErrInvalidRequest(err))
		return
	}
	validate := validator.New()
	if err := validate.Struct(*data); err != nil {
		english := en.New()
		uni := ut.New(english, english)
		trans, _ := uni.GetTranslator("en")
		_ = enTranslations.RegisterDefaultTranslations(validate, trans)
		vv := translateError(err, trans)
		render.Render(w, r, ErrValidation(err, vv))
		return
	}

	if err := h.svc.SimulateTraffic(r.Context(), data.Intensity); err != nil {
		render.Render(w, r, serviceErrRenderer(err))
		return
	}

	render.Status(r, http.StatusOK)
	render.JSON(w, r, &SimulateTrafficResponse{Status: "traffic conditions updated"})
}

type GraphBoundsResponse struct {
	Bounds datastructure.GraphBounds `json:"bounds"`
	Center datastructure.Coordinate  `json:"center"`
}

func (h *NavigationHandler) GraphBounds(w http.ResponseWriter, r *http.Request) {
	bounds, err := h.svc.GraphBounds(r.Context())
	if err != nil {
		render.Render(w, r, serviceErrRenderer(err))
		return
	}

	render.Status(r, http.StatusOK)
	render.JSON(w, r, &GraphBoundsResponse{
		Bounds: bounds,
		Center: bounds.Center(),
	})
}

type NearestStreetsRequest struct {
	Lat float64 `json:"lat" validate:"required,lt=90,gt=-90"`
	Lon float64 `json:"lon" validate:"required,lt=180,gt=-180"`
}

func (s *NearestStreetsRequest) Bind(r *http.Request) error {
	if s.Lat == 0 && s.Lon == 0 {
		return errors.New("invalid request")
	}
	return nil
}

type NearestStreetsResponse struct {
	Streets []struct {
		Street     datastructure.KVEdge     `json:"street"`
		Projection datastructure.Coordinate `json:"projection"`
		DistMeters float64                  `json:"dist_meters"`
	} `json:"streets"`
}

func RenderNearestStreetsResponse(streets []datastructure.NearbyStreet) *NearestStreetsResponse {
	streetsResp := make([]struct {
		Street     datastructure.KVEdge     `json:"street"`
		Projection datastructure.Coordinate `json:"projection"`
		DistMeters float64                  `json:"dist_meters"`
	}, 0, len(streets))
	for _, street := range streets {
		streetsResp = append(streetsResp, struct {
			Street     datastructure.KVEdge     "json:\"street\""
			Projection datastructure.Coordinate "json:\"projection\""
			DistMeters float64                  "json:\"dist_meters\""
		}{
			street.Edge,
			street.Projection,
			street.DistMeters,
		})
	}
	return &NearestStreetsResponse{Streets: streetsResp}
}

func (h *NavigationHandler) NearestStreets(w http.ResponseWriter, r *http.Request) {
	data := &NearestStreetsRequest{}
	if err := render.Bind(r, data); err != nil {
		render.Render(w, r, ErrInvalidRequest(err))
		return
	}
	validate := validator.New()
	if err := validate.Struct(*data); err != nil {
		english := en.New()
		uni := ut.New(english, english)
		trans, _ := uni.GetTranslator("en")
		_ = enTranslations.RegisterDefaultTranslations(validate, trans)
		vv := translateError(err, trans)
		render.Render(w, r, ErrValidation(err, vv))
		return
	}

	streets, err := h.svc.NearestStreets(r.Context(), data.Lat, data.Lon)
	if err != nil {
		render.Render(w, r, serviceErrRenderer(err))
		return
	}

	render.Status(r, http.StatusOK)
	render.JSON(w, r, RenderNearestStreetsResponse(streets))
}

func serviceErrRenderer(err error) render.Renderer {
	var svcErr *server.Error
	if errors.As(err, &svcErr) {
		switch svcErr.Code() {
		case server.ErrNotFound:
			return ErrNotFoundRend(svcErr)
		case server.ErrBadParamInput:
			return ErrInvalidRequest(svcErr)
		}
	}
	return ErrInternalServerErrorRend(errors.New(server.MessageInternalServerError))
}

func ErrInvalidRequest(err error) render.Renderer {
	return &ErrResponse{
		Err:            err,
		HTTPStatusCode: 400,
		StatusText:     "Invalid request.",
		ErrorText:      err.Error(),
	}
}

type ErrResponse struct {
	Err            error `json:"-"` // low-level runtime error
	HTTPStatusCode int   `json:"-"` // http response status code

	StatusText    string   `json:"status"`          // user-level status message
	AppCode       int64    `json:"code,omitempty"`  // application-specific error code
	ErrorText     string   `json:"error,omitempty"` // application-level error message, for debugging
	ErrValidation []string `json:"validation,omitempty"`
}

func (e *ErrResponse) Render(w http.ResponseWriter, r *http.Request) error {
	render.Status(r, e.HTTPStatusCode)
	return nil
}

func translateError(err error, trans ut.Translator) (errs []error) {
	if err == nil {
		return nil
	}
	validatorErrs := err.(validator.ValidationErrors)
	for _, e := range validatorErrs {
		translatedErr := fmt.Errorf(e.Translate(trans))
		errs = append(errs, translatedErr)
	}
	return errs
}

func ErrValidation(err error, errV []error) render.Renderer {
	vv := []string{}
	for _, v := range errV {
		vv = append(vv, v.Error())
	}
	return &ErrResponse{
		Err:            err,
		HTTPStatusCode: 400,
		StatusText:     "Invalid request.",
		ErrorText:      err.Error(),
		ErrValidation:  vv,
	}
}

func ErrNotFoundRend(err error) render.Renderer {
	return &ErrResponse{
		Err:            err,
		HTTPStatusCode: 404,
		StatusText:     "Resource not found.",
		ErrorText:      err.Error(),
	}
}

func ErrInternalServerErrorRend(err error) render.Renderer {
	return &ErrResponse{
		Err:            err,
		HTTPStatusCode: 500,
		StatusText:     "Internal server error.",
		ErrorText:      err.Error(),
	}
}
