package server

import (
	"fmt"
	"math"
	"net/http"
	"net/url"

	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/material"
	"github.com/df07/go-pathtracer/pkg/scene"
)

// InspectResponse represents the JSON response for object inspection
type InspectResponse struct {
	Hit          bool                   `json:"hit"`
	MaterialType string                 `json:"materialType,omitempty"`
	GeometryType string                 `json:"geometryType,omitempty"`
	Point        [3]float64             `json:"point"`
	Normal       [3]float64             `json:"normal"`
	Distance     float64                `json:"distance"`
	FrontFace    bool                   `json:"frontFace"`
	Properties   map[string]interface{} `json:"properties,omitempty"`
}

// InspectResult contains the hit record and the shape an inspection ray struck
type InspectResult struct {
	Hit       bool
	HitRecord *material.HitRecord
	Shape     geometry.Shape
}

// extractMaterialInfo describes a material by type
func extractMaterialInfo(mat material.Material) (string, map[string]interface{}) {
	properties := make(map[string]interface{})

	switch m := mat.(type) {
	case *material.Lambertian:
		properties["albedo"] = [3]float64{m.Albedo.X, m.Albedo.Y, m.Albedo.Z}
		properties["color"] = hexColor(m.Albedo.X, m.Albedo.Y, m.Albedo.Z)
		return "lambertian", properties

	case *material.Metal:
		properties["albedo"] = [3]float64{m.Albedo.X, m.Albedo.Y, m.Albedo.Z}
		properties["color"] = hexColor(m.Albedo.X, m.Albedo.Y, m.Albedo.Z)
		properties["fuzzness"] = m.Fuzzness
		return "metal", properties

	case *material.Dielectric:
		properties["refractiveIndex"] = m.RefractiveIndex
		properties["color"] = "#ffffff" // Clear glass
		return "dielectric", properties

	default:
		return "unknown", properties
	}
}

// extractGeometryInfo describes a shape by type
func extractGeometryInfo(shape geometry.Shape) (string, map[string]interface{}) {
	properties := make(map[string]interface{})

	switch geom := shape.(type) {
	case *geometry.Sphere:
		properties["center"] = [3]float64{geom.Center.X, geom.Center.Y, geom.Center.Z}
		properties["radius"] = geom.Radius
		return "sphere", properties

	default:
		return "unknown", properties
	}
}

func hexColor(r, g, b float64) string {
	clamp := func(x float64) int { return int(math.Max(0, math.Min(1, x)) * 255) }
	return fmt.Sprintf("#%02x%02x%02x", clamp(r), clamp(g), clamp(b))
}

// inspectPixel casts an unjittered ray through the center of pixel (x, y),
// where y counts down from the top of the image, and reports the first object hit
func inspectPixel(sceneObj *scene.Scene, width, height, pixelX, pixelY int) InspectResult {
	camera := sceneObj.Camera()
	u := (float64(pixelX) + 0.5) / float64(width)
	v := (float64(height-1-pixelY) + 0.5) / float64(height)
	ray := camera.GetRay(u, v)

	hit, isHit := sceneObj.World().Hit(ray, 0.001, math.Inf(1))
	if !isHit {
		return InspectResult{Hit: false}
	}

	// The aggregate only returns the hit record; find the shape that produced it
	for _, shape := range sceneObj.Shapes {
		if shapeHit, shapeIsHit := shape.Hit(ray, 0.001, hit.T+0.001); shapeIsHit && shapeHit.T == hit.T {
			return InspectResult{Hit: true, HitRecord: hit, Shape: shape}
		}
	}

	return InspectResult{Hit: true, HitRecord: hit}
}

// handleInspect handles ray casting inspection requests
func (s *Server) handleInspect(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	query := r.URL.Query()

	sceneName := query.Get("scene")
	if sceneName == "" {
		sceneName = "demo"
	}

	width, height, pixelX, pixelY, err := parseInspectParams(query)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	sceneObj, err := s.createScene(sceneName)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	sceneObj.SetImageSize(width, height)
	height = sceneObj.SamplingConfig.Height
	if pixelY >= height {
		writeError(w, http.StatusBadRequest, "Pixel coordinates out of bounds")
		return
	}
	if err := sceneObj.CameraConfig.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("Invalid scene: %v", err))
		return
	}

	result := inspectPixel(sceneObj, width, height, pixelX, pixelY)
	if !result.Hit {
		writeJSON(w, http.StatusOK, InspectResponse{Hit: false})
		return
	}

	materialType, materialProps := extractMaterialInfo(result.HitRecord.Material)
	geometryType, geometryProps := "unknown", map[string]interface{}{}
	if result.Shape != nil {
		geometryType, geometryProps = extractGeometryInfo(result.Shape)
	}

	hit := result.HitRecord
	writeJSON(w, http.StatusOK, InspectResponse{
		Hit:          true,
		MaterialType: materialType,
		GeometryType: geometryType,
		Point:        [3]float64{hit.Point.X, hit.Point.Y, hit.Point.Z},
		Normal:       [3]float64{hit.Normal.X, hit.Normal.Y, hit.Normal.Z},
		Distance:     hit.T,
		FrontFace:    hit.FrontFace,
		Properties: map[string]interface{}{
			"material": materialProps,
			"geometry": geometryProps,
		},
	})
}

// parseInspectParams reads the image size and the pixel to inspect.
// A zero height is resolved later from the scene's aspect ratio.
func parseInspectParams(query url.Values) (width, height, pixelX, pixelY int, err error) {
	if width, err = parseIntParam(query, "width", 400, minImageSize, maxImageSize); err != nil {
		return
	}
	if height, err = parseIntParam(query, "height", 0, 0, maxImageSize); err != nil {
		return
	}
	if query.Get("x") == "" || query.Get("y") == "" {
		err = fmt.Errorf("x and y are required")
		return
	}
	if pixelX, err = parseIntParam(query, "x", 0, 0, width-1); err != nil {
		return
	}
	pixelY, err = parseIntParam(query, "y", 0, 0, maxImageSize-1)
	return
}
