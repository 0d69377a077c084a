package server

import (
	"math"
	"net/http"
	"strconv"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/material"
	"github.com/df07/go-whitted-raytracer/pkg/renderer"
	"github.com/df07/go-whitted-raytracer/pkg/scene"
)

// InspectResponse describes what the ray through one pixel hits
type InspectResponse struct {
	Hit          bool                   `json:"hit"`
	GeometryType string                 `json:"geometryType,omitempty"`
	Point        [3]float64             `json:"point,omitempty"`
	Normal       [3]float64             `json:"normal,omitempty"`
	Distance     float64                `json:"distance,omitempty"`
	Color        [3]float64             `json:"color"` // Traced color before clamping
	Properties   map[string]interface{} `json:"properties,omitempty"`
}

// inspectPixel casts the center ray of a pixel and reports the closest hit
func inspectPixel(preset *scene.Preset, width, height, pixelX, pixelY int) (InspectResponse, error) {
	camera, err := renderer.NewCamera(preset.Camera, preset.Render)
	if err != nil {
		return InspectResponse{}, err
	}
	ray := camera.ConstructRay(width, height, pixelX, pixelY)

	color := renderer.NewBasicRayTracer(preset.Scene).TraceRay(ray)
	response := InspectResponse{Color: [3]float64{color.R(), color.G(), color.B()}}

	hits := preset.Scene.Geometries().Intersect(ray, math.Inf(1))
	hit, ok := geometry.FindClosestHit(ray, hits)
	if !ok {
		return response, nil
	}

	response.Hit = true
	response.Point = pointArray(hit.Point)
	response.Distance = ray.Origin().Distance(hit.Point)
	if n, err := hit.Geometry.Normal(hit.Point); err == nil {
		response.Normal = [3]float64{n.X(), n.Y(), n.Z()}
	}

	geometryType, geometryProps := extractGeometryInfo(hit.Geometry)
	response.GeometryType = geometryType
	emission := hit.Geometry.Emission()
	response.Properties = map[string]interface{}{
		"geometry": geometryProps,
		"material": extractMaterialInfo(hit.Geometry.Material()),
		"emission": [3]float64{emission.R(), emission.G(), emission.B()},
	}
	return response, nil
}

func pointArray(p core.Point) [3]float64 {
	return [3]float64{p.X(), p.Y(), p.Z()}
}

func extractMaterialInfo(mat material.Material) map[string]interface{} {
	triple := func(d core.Double3) [3]float64 { return [3]float64{d.D1, d.D2, d.D3} }
	return map[string]interface{}{
		"kD":        triple(mat.KD),
		"kS":        triple(mat.KS),
		"shininess": mat.Shininess,
		"kT":        triple(mat.KT),
		"kR":        triple(mat.KR),
	}
}

func extractGeometryInfo(g geometry.Geometry) (string, map[string]interface{}) {
	properties := make(map[string]interface{})

	switch shape := g.(type) {
	case *geometry.Sphere:
		properties["center"] = pointArray(shape.Center())
		properties["radius"] = shape.Radius()
		return "sphere", properties

	case *geometry.Plane:
		n := shape.PlaneNormal()
		properties["point"] = pointArray(shape.Point())
		properties["normal"] = [3]float64{n.X(), n.Y(), n.Z()}
		return "plane", properties

	case *geometry.Triangle:
		vertices := shape.Vertices()
		properties["vertices"] = [][3]float64{pointArray(vertices[0]), pointArray(vertices[1]), pointArray(vertices[2])}
		return "triangle", properties

	case *geometry.Polygon:
		var vertices [][3]float64
		for _, v := range shape.Vertices() {
			vertices = append(vertices, pointArray(v))
		}
		properties["vertices"] = vertices
		return "polygon", properties

	case *geometry.Cylinder:
		axis := shape.Axis()
		properties["base"] = pointArray(axis.Origin())
		properties["radius"] = shape.Radius()
		properties["height"] = shape.Height()
		properties["capped"] = shape.Capped()
		return "cylinder", properties

	case *geometry.Tube:
		axis := shape.Axis()
		properties["base"] = pointArray(axis.Origin())
		properties["radius"] = shape.Radius()
		return "tube", properties

	default:
		return "unknown", properties
	}
}

// handleInspect handles ray casting inspection requests
func (s *Server) handleInspect(w http.ResponseWriter, r *http.Request) {
	req, preset, err := s.parseRenderRequest(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid scene parameters: " + err.Error()})
		return
	}

	pixelX, err := strconv.Atoi(r.URL.Query().Get("x"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid x coordinate"})
		return
	}
	pixelY, err := strconv.Atoi(r.URL.Query().Get("y"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid y coordinate"})
		return
	}
	if pixelX < 0 || pixelX >= req.Width || pixelY < 0 || pixelY >= req.Height {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Pixel coordinates out of bounds"})
		return
	}

	response, err := inspectPixel(preset, req.Width, req.Height, pixelX, pixelY)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, response)
}
