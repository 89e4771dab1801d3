package controllers

import (
	"github.com/gabrielsantosba/caminho/pkg/http/usecases"
	"github.com/gabrielsantosba/caminho/pkg/util"
)

type shortestPathRequest struct {
	Latitude    float64 `json:"latitude" validate:"required,min=-90,max=90"`
	Longitude   float64 `json:"longitude" validate:"required,min=-180,max=180"`
	Destination string  `json:"destination" validate:"required"`
}

type shortestPathResponse struct {
	Eta         float64  `json:"eta_seconds"`
	EtaMinutes  float64  `json:"eta_minutes"`
	Distance    float64  `json:"distance_meters"`
	Polyline    string   `json:"polyline"`
	Streets     []string `json:"streets"`
	Destination string   `json:"destination"`
	HTMLPath    string   `json:"html_path"`
	PNGPath     string   `json:"png_path"`
}

func NewShortestPathResponse(result *usecases.RouteResult) shortestPathResponse {
	return shortestPathResponse{
		Eta:         util.RoundFloat(result.Route.Eta, 2),
		EtaMinutes:  util.RoundFloat(util.SecondsToMinutes(result.Route.Eta), 2),
		Distance:    util.RoundFloat(result.Route.Distance, 2),
		Polyline:    result.Polyline,
		Streets:     result.Route.StreetNames,
		Destination: result.DestLabel,
		HTMLPath:    "/static/" + result.Artifacts.HTMLPath,
		PNGPath:     "/static/" + result.Artifacts.PNGPath,
	}
}
