package server

import (
	"encoding/json"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/matzehuels/flightmesh/pkg/buildinfo"
	"github.com/matzehuels/flightmesh/pkg/errors"
	"github.com/matzehuels/flightmesh/pkg/pipeline"
	"github.com/matzehuels/flightmesh/pkg/points"
)

type coordRequest struct {
	Lat *float64 `json:"lat"`
	Lng *float64 `json:"lng"`
}

type pointsResponse struct {
	Points     []points.Point `json:"points"`
	MaxRangeKm float64        `json:"max_range_km"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status": "ok",
		"build":  buildinfo.Get(),
		"points": len(s.engine.Points()),
	})
}

func (s *Server) handleListPoints(w http.ResponseWriter, r *http.Request) {
	s.writePoints(w, http.StatusOK)
}

func (s *Server) writePoints(w http.ResponseWriter, status int) {
	pts := s.engine.Points()
	if pts == nil {
		pts = []points.Point{}
	}
	writeJSON(w, status, pointsResponse{Points: pts, MaxRangeKm: s.engine.MaxRangeKm()})
}

func (s *Server) handleAddPoint(w http.ResponseWriter, r *http.Request) {
	lat, lng, err := decodeCoord(r)
	if err != nil {
		s.writeErr(w, r, err)
		return
	}
	p, err := s.engine.Add(r.Context(), lat, lng)
	if err != nil {
		s.writeErr(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, p)
}

func (s *Server) handleMovePoint(w http.ResponseWriter, r *http.Request) {
	id, err := intParam(r, "id")
	if err != nil {
		s.writeErr(w, r, err)
		return
	}
	lat, lng, err := decodeCoord(r)
	if err != nil {
		s.writeErr(w, r, err)
		return
	}
	p, err := s.engine.Move(r.Context(), id, lat, lng)
	if err != nil {
		s.writeErr(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (s *Server) handleRemovePoint(w http.ResponseWriter, r *http.Request) {
	id, err := intParam(r, "id")
	if err != nil {
		s.writeErr(w, r, err)
		return
	}
	p, err := s.engine.Remove(r.Context(), id)
	if err != nil {
		s.writeErr(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (s *Server) handleRemoveAt(w http.ResponseWriter, r *http.Request) {
	index, err := intParam(r, "index")
	if err != nil {
		s.writeErr(w, r, err)
		return
	}
	p, err := s.engine.RemoveAt(r.Context(), index)
	if err != nil {
		s.writeErr(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (s *Server) handleClearPoints(w http.ResponseWriter, r *http.Request) {
	s.engine.Clear(r.Context())
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleMatrix(w http.ResponseWriter, r *http.Request) {
	g, err := s.engine.Snapshot()
	if err != nil {
		s.writeErr(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, g)
}

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	data, err := s.engine.Export(r.Context())
	if err != nil {
		s.writeErr(w, r, err)
		return
	}
	w.Header().Set("Content-Type", pipeline.ContentTypes[pipeline.FormatCSV])
	w.Header().Set("Content-Disposition", `attachment; filename="flightmesh.csv"`)
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}

func (s *Server) handleImport(w http.ResponseWriter, r *http.Request) {
	data, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxImportBytes))
	if err != nil {
		s.writeErr(w, r, errors.Wrap(errors.ErrCodeInvalidInput, err, "read body"))
		return
	}
	if err := s.engine.Import(r.Context(), data); err != nil {
		s.writeErr(w, r, err)
		return
	}
	s.writePoints(w, http.StatusOK)
}

func (s *Server) handleGraph(format string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		labels, _ := strconv.ParseBool(r.URL.Query().Get("labels"))

		res, err := s.runner.Execute(r.Context(), s.engine.Points(), pipeline.Options{
			Formats:    []string{format},
			EdgeLabels: labels,
		})
		if err != nil {
			s.writeErr(w, r, err)
			return
		}
		w.Header().Set("Content-Type", pipeline.ContentTypes[format])
		w.Header().Set("ETag", strconv.Quote(res.PointsHash))
		w.WriteHeader(http.StatusOK)
		w.Write(res.Artifacts[format])
	}
}

func decodeCoord(r *http.Request) (float64, float64, error) {
	dec := json.NewDecoder(io.LimitReader(r.Body, 1<<16))
	dec.DisallowUnknownFields()

	var req coordRequest
	if err := dec.Decode(&req); err != nil {
		return 0, 0, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode body")
	}
	if req.Lat == nil || req.Lng == nil {
		return 0, 0, errors.New(errors.ErrCodeInvalidInput, "lat and lng are required")
	}
	return *req.Lat, *req.Lng, nil
}

func intParam(r *http.Request, name string) (int, error) {
	raw := chi.URLParam(r, name)
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, errors.New(errors.ErrCodeInvalidInput, "%s must be an integer, got %q", name, raw)
	}
	return v, nil
}
