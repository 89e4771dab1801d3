package controllers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gabrielsantosba/caminho/pkg/util"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

type envelope map[string]interface{}

func (api *routingAPI) writeJSON(w http.ResponseWriter, status int, data envelope, headers http.Header) error {
	js, err := json.Marshal(data)
	if err != nil {
		return err
	}
	js = append(js, '\n')

	for key, value := range headers {
		w.Header()[key] = value
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(js)

	return nil
}

func (api *routingAPI) errorResponse(w http.ResponseWriter, r *http.Request, status int, code string, message interface{}) {
	env := envelope{"error": map[string]interface{}{
		"code":    code,
		"message": message,
	}}

	if err := api.writeJSON(w, status, env, nil); err != nil {
		api.log.Error("writing error response", zap.Error(err))
		w.WriteHeader(http.StatusInternalServerError)
	}
}

func (api *routingAPI) BadRequestResponse(w http.ResponseWriter, r *http.Request, err error) {
	api.errorResponse(w, r, http.StatusBadRequest, "INVALID_INPUT", err.Error())
}

func (api *routingAPI) NotFoundResponse(w http.ResponseWriter, r *http.Request, err error) {
	api.errorResponse(w, r, http.StatusNotFound, "NOT_FOUND", err.Error())
}

func (api *routingAPI) ServerErrorResponse(w http.ResponseWriter, r *http.Request, err error) {
	api.log.Error("internal server error", zap.Error(err),
		zap.String("request_method", r.Method), zap.String("request_url", r.URL.String()))
	api.errorResponse(w, r, http.StatusInternalServerError, "INTERNAL", util.MessageInternalServerError)
}

// getStatusCode maps the pipeline failure taxonomy onto HTTP responses. The
// five kinds stay distinguishable through the error code field.
func (api *routingAPI) getStatusCode(w http.ResponseWriter, r *http.Request, err error) {
	switch code := util.ErrorCode(err); {
	case errors.Is(code, util.ErrBadParamInput):
		api.BadRequestResponse(w, r, err)
	case errors.Is(code, util.ErrNotFound):
		api.NotFoundResponse(w, r, err)
	case errors.Is(code, util.ErrRouteNotFound):
		// a legitimate negative result, not a server failure
		api.errorResponse(w, r, http.StatusNotFound, "ROUTE_NOT_FOUND", err.Error())
	case errors.Is(code, util.ErrAcquisitionTimeout):
		api.errorResponse(w, r, http.StatusGatewayTimeout, "ACQUISITION_TIMEOUT", err.Error())
	case errors.Is(code, util.ErrNoGraphData):
		api.errorResponse(w, r, http.StatusBadGateway, "NO_GRAPH_DATA", err.Error())
	case errors.Is(code, util.ErrAcquisition):
		api.errorResponse(w, r, http.StatusBadGateway, "ACQUISITION_FAILURE", err.Error())
	default:
		api.ServerErrorResponse(w, r, err)
	}
}

func translateError(err error, trans ut.Translator) (errs []error) {
	if err == nil {
		return nil
	}
	var validatorErrs validator.ValidationErrors
	if errors.As(err, &validatorErrs) {
		for _, e := range validatorErrs {
			errs = append(errs, errors.New(e.Translate(trans)))
		}
		return errs
	}
	return []error{err}
}
