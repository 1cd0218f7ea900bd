package server

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/df07/go-spectral-raytracer/pkg/core"
	"github.com/df07/go-spectral-raytracer/pkg/material"
	"github.com/df07/go-spectral-raytracer/pkg/renderer"
	"github.com/df07/go-spectral-raytracer/pkg/scene"
	"github.com/df07/go-spectral-raytracer/pkg/spectra"
)

// InspectResponse represents the JSON response for object inspection
type InspectResponse struct {
	Hit          bool                   `json:"hit"`
	Object       int                    `json:"object"`
	Parent       *int                   `json:"parent,omitempty"`
	MaterialType string                 `json:"materialType"`
	Point        [3]float32             `json:"point"`
	Normal       [3]float32             `json:"normal"`
	Distance     float32                `json:"distance"`
	Polygons     int                    `json:"polygons"`
	Properties   map[string]interface{} `json:"properties"`
}

// extractMaterialInfo describes a material for the inspector
func extractMaterialInfo(m material.Material) (string, map[string]interface{}) {
	properties := make(map[string]interface{})
	albedo := spectra.ToDisplay(m.Albedo)
	properties["color"] = fmt.Sprintf("#%02x%02x%02x", albedo.R, albedo.G, albedo.B)
	properties["albedoLuminance"] = m.Albedo.Luminance()

	if m.Kind == material.PBR {
		properties["metallic"] = m.Metallic
		properties["roughness"] = m.Roughness
	}
	return m.Kind.String(), properties
}

// inspectPixel casts the primary ray through a pixel centre and reports the closest hit
func inspectPixel(sceneObj *scene.Scene, pixelX, pixelY int) (renderer.Hit, bool) {
	sceneObj.ApplyTransforms()
	return renderer.ShootRay(sceneObj.Camera.PixelToRay(pixelX, pixelY), sceneObj)
}

func vecArray(v core.Vec3) [3]float32 {
	return [3]float32{v.X, v.Y, v.Z}
}

// handleInspect handles ray casting inspection requests
func (s *Server) handleInspect(w http.ResponseWriter, r *http.Request) {
	sceneObj, req, err := s.loadRequestScene(r.URL.Query())
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid scene parameters: "+err.Error())
		return
	}

	pixelX, err := strconv.Atoi(r.URL.Query().Get("x"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid x coordinate")
		return
	}
	pixelY, err := strconv.Atoi(r.URL.Query().Get("y"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid y coordinate")
		return
	}
	if pixelX < 0 || pixelX >= req.Width || pixelY < 0 || pixelY >= req.Height {
		writeError(w, http.StatusBadRequest, "Pixel coordinates out of bounds")
		return
	}

	hit, ok := inspectPixel(sceneObj, pixelX, pixelY)
	if !ok {
		writeJSON(w, http.StatusOK, InspectResponse{Hit: false})
		return
	}

	obj := sceneObj.Object(hit.Object)
	materialType, materialProps := extractMaterialInfo(obj.Material)
	bounds := obj.Bounds()

	response := InspectResponse{
		Hit:          true,
		Object:       int(hit.Object),
		MaterialType: materialType,
		Point:        vecArray(hit.Point),
		Normal:       vecArray(hit.Normal),
		Distance:     hit.Distance,
		Polygons:     obj.PolygonCount(),
		Properties: map[string]interface{}{
			"material": materialProps,
			"bounds": map[string]interface{}{
				"center": vecArray(bounds.Center),
				"radius": bounds.Radius,
			},
		},
	}
	if parent, ok := obj.Parent(); ok {
		p := int(parent)
		response.Parent = &p
	}
	writeJSON(w, http.StatusOK, response)
}
