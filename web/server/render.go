package server

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"runtime"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/output"
	"github.com/df07/go-whitted-raytracer/pkg/renderer"
	"github.com/df07/go-whitted-raytracer/pkg/scene"
)

const defaultScene = "concentric-spheres"

var errUploadDisabled = errors.New("upload is not configured on this server")

// RenderRequest represents a render request from the client
type RenderRequest struct {
	Scene    string // Built-in name, "json:<name>" or a path to a scene file
	Width    int
	Height   int
	Samples  int  // Rays per pixel
	Adaptive bool // Adaptive supersampling
	Workers  int
	Upload   bool   // Publish the result to S3
	Format   string // "png" or "sse"
}

// RenderStats represents render statistics
type RenderStats struct {
	TotalPixels         int     `json:"totalPixels"`
	PrimaryRays         int     `json:"primaryRays"`
	Subdivisions        int     `json:"subdivisions"`
	AverageRaysPerPixel float64 `json:"averageRaysPerPixel"`
	RaysTraced          int64   `json:"raysTraced"` // Including shadow and secondary rays
	ElapsedMs           int64   `json:"elapsedMs"`
}

// RenderComplete is the final event of a streamed render
type RenderComplete struct {
	RenderID  string      `json:"renderId"`
	ImageData string      `json:"imageData"` // Base64 encoded PNG
	ObjectKey string      `json:"objectKey,omitempty"`
	Stats     RenderStats `json:"stats"`
}

// renderJob is a configured camera with its sink and tracer
type renderJob struct {
	id        string
	sceneName string
	camera    *renderer.Camera
	writer    *output.ImageWriter
	tracer    *renderer.BasicRayTracer
	startTime time.Time
}

// handleRender renders a scene and returns it as a PNG, or as a stream of
// console and completion events when format=sse
func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	req, preset, err := s.parseRenderRequest(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid request: " + err.Error()})
		return
	}

	renderID := uuid.NewString()
	if req.Format == "sse" {
		s.streamRender(r.Context(), w, req, preset, renderID)
		return
	}

	job, err := s.setupRender(renderID, req, preset, NewWebLogger(renderID, nil))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	if err := job.camera.RenderImageContext(r.Context()); err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "Render error: " + err.Error()})
		return
	}

	key, err := s.upload(r.Context(), req, job)
	if err != nil {
		writeJSON(w, http.StatusBadGateway, map[string]string{"error": err.Error()})
		return
	}

	stats := job.stats()
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("X-Render-Id", renderID)
	w.Header().Set("X-Render-Time-Ms", strconv.FormatInt(stats.ElapsedMs, 10))
	w.Header().Set("X-Rays-Traced", strconv.FormatInt(stats.RaysTraced, 10))
	if key != "" {
		w.Header().Set("X-Object-Key", key)
	}
	if err := job.writer.Encode(w); err != nil {
		log.Printf("[%s] Error writing image: %v", renderID, err)
	}
}

// streamRender runs the render in the background and forwards console
// messages as SSE events. Only this goroutine writes to w.
func (s *Server) streamRender(ctx context.Context, w http.ResponseWriter, req *RenderRequest, preset *scene.Preset, renderID string) {
	s.setSSEHeaders(w)

	consoleChan := make(chan ConsoleMessage, 50)
	job, err := s.setupRender(renderID, req, preset, NewWebLogger(renderID, consoleChan))
	if err != nil {
		s.sendSSEEvent(w, "error", err.Error())
		return
	}

	done := make(chan error, 1)
	go func() {
		done <- job.camera.RenderImageContext(ctx)
	}()

	for {
		select {
		case msg := <-consoleChan:
			s.sendConsoleEvent(w, msg)
		case err := <-done:
			for pending := true; pending; {
				select {
				case msg := <-consoleChan:
					s.sendConsoleEvent(w, msg)
				default:
					pending = false
				}
			}
			if err != nil {
				s.sendSSEEvent(w, "error", "Render error: "+err.Error())
				return
			}
			s.sendComplete(ctx, w, req, job)
			return
		}
	}
}

func (s *Server) sendComplete(ctx context.Context, w http.ResponseWriter, req *RenderRequest, job *renderJob) {
	key, err := s.upload(ctx, req, job)
	if err != nil {
		s.sendSSEEvent(w, "error", err.Error())
		return
	}

	var buf bytes.Buffer
	if err := job.writer.Encode(&buf); err != nil {
		s.sendSSEEvent(w, "error", "failed to encode image: "+err.Error())
		return
	}

	data, err := json.Marshal(RenderComplete{
		RenderID:  job.id,
		ImageData: base64.StdEncoding.EncodeToString(buf.Bytes()),
		ObjectKey: key,
		Stats:     job.stats(),
	})
	if err != nil {
		s.sendSSEEvent(w, "error", err.Error())
		return
	}
	s.sendSSEEvent(w, "complete", string(data))
}

// parseRenderRequest parses request parameters; unset values come from the
// scene's own render settings
func (s *Server) parseRenderRequest(r *http.Request) (*RenderRequest, *scene.Preset, error) {
	query := r.URL.Query()
	req := &RenderRequest{Scene: query.Get("scene"), Format: query.Get("format")}
	if req.Scene == "" {
		req.Scene = defaultScene
	}
	switch req.Format {
	case "":
		req.Format = "png"
	case "png", "sse":
	default:
		return nil, nil, fmt.Errorf("unknown format: %s", req.Format)
	}

	preset, err := scene.CreateNamed(req.Scene)
	if err != nil {
		return nil, nil, err
	}

	if req.Width, err = parseIntParam(query, "width", preset.Render.Width, minImageSize, maxImageSize); err != nil {
		return nil, nil, err
	}
	if req.Height, err = parseIntParam(query, "height", preset.Render.Height, minImageSize, maxImageSize); err != nil {
		return nil, nil, err
	}
	if req.Samples, err = parseIntParam(query, "samples", preset.Render.RaysPerPixel, 1, maxSamples); err != nil {
		return nil, nil, err
	}
	if req.Workers, err = parseIntParam(query, "workers", s.workers, 0, maxWorkers); err != nil {
		return nil, nil, err
	}
	if req.Adaptive, err = parseBoolParam(query, "adaptive", preset.Render.AdaptiveSample); err != nil {
		return nil, nil, err
	}
	if req.Upload, err = parseBoolParam(query, "upload", false); err != nil {
		return nil, nil, err
	}
	if req.Upload && s.publisher == nil {
		return nil, nil, errUploadDisabled
	}

	if req.Width*req.Height > 800*600 && req.Samples > 64 {
		log.Printf("Render warning: Large image with high samples may render slowly")
	}
	return req, preset, nil
}

// setupRender creates the camera, image writer and ray tracer of a request
func (s *Server) setupRender(renderID string, req *RenderRequest, preset *scene.Preset, logger core.Logger) (*renderJob, error) {
	render := preset.Render
	render.Width = req.Width
	render.Height = req.Height
	render.RaysPerPixel = req.Samples
	render.AdaptiveSample = req.Adaptive
	render.Workers = req.Workers
	if render.Workers == 0 {
		render.Workers = runtime.NumCPU()
	}

	camera, err := renderer.NewCamera(preset.Camera, render)
	if err != nil {
		return nil, fmt.Errorf("scene %s: %w", req.Scene, err)
	}

	writer := output.NewImageWriter(renderID+".png", render.Width, render.Height)
	tracer := renderer.NewBasicRayTracer(preset.Scene)
	camera.SetImageWriter(writer).SetRayTracer(tracer).SetLogger(logger)

	return &renderJob{
		id:        renderID,
		sceneName: preset.Scene.Name(),
		camera:    camera,
		writer:    writer,
		tracer:    tracer,
		startTime: time.Now(),
	}, nil
}

// upload publishes the image when the request asks for it
func (s *Server) upload(ctx context.Context, req *RenderRequest, job *renderJob) (string, error) {
	if !req.Upload {
		return "", nil
	}
	if s.publisher == nil {
		return "", errUploadDisabled
	}
	return s.publisher.PublishImage(ctx, job.sceneName, job.writer)
}

func (job *renderJob) stats() RenderStats {
	cs := job.camera.Stats()
	return RenderStats{
		TotalPixels:         cs.TotalPixels,
		PrimaryRays:         cs.PrimaryRays,
		Subdivisions:        cs.Subdivisions,
		AverageRaysPerPixel: cs.AverageRaysPerPixel(),
		RaysTraced:          job.tracer.RaysTraced(),
		ElapsedMs:           time.Since(job.startTime).Milliseconds(),
	}
}

// setSSEHeaders sets the required headers for Server-Sent Events
func (s *Server) setSSEHeaders(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("Access-Control-Allow-Origin", "*")
}

func (s *Server) sendConsoleEvent(w http.ResponseWriter, msg ConsoleMessage) {
	data, err := json.Marshal(msg)
	if err != nil {
		log.Printf("Error marshaling console message: %v", err)
		return
	}
	s.sendSSEEvent(w, "console", string(data))
}

// sendSSEEvent sends a generic SSE event
func (s *Server) sendSSEEvent(w http.ResponseWriter, event, data string) error {
	if _, err := fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event, data); err != nil {
		return err
	}
	if flusher, ok := w.(http.Flusher); ok {
		flusher.Flush()
	}
	return nil
}
