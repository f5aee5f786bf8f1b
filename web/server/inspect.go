package server

import (
	"net/http"
	"strconv"

	"github.com/df07/go-sphere-pathtracer/pkg/geometry"
	"github.com/df07/go-sphere-pathtracer/pkg/renderer"
	"github.com/df07/go-sphere-pathtracer/pkg/scene"
)

// InspectResponse represents the JSON response for object inspection
type InspectResponse struct {
	Hit         bool       `json:"hit"`
	SphereIndex int        `json:"sphereIndex"`
	IsLight     bool       `json:"isLight"`
	Point       [3]float64 `json:"point"`
	Normal      [3]float64 `json:"normal"`
	Distance    float64    `json:"distance"`
	FrontFace   bool       `json:"frontFace"`
	Radius      float64    `json:"radius"`
	Albedo      [3]float64 `json:"albedo"`
	Emission    [3]float64 `json:"emission"`
}

// inspectPixel casts the camera ray through image pixel (x, y), row 0 on
// top, and describes the nearest sphere it hits
func inspectPixel(sceneObj *scene.Scene, width, height, x, y int) InspectResponse {
	camera := renderer.DefaultCamera(width, height)
	ray := camera.GetRay(x, height-1-y, width, height)

	hit, isHit := sceneObj.Intersect(ray)
	if !isHit {
		return InspectResponse{Hit: false, SphereIndex: -1}
	}

	sphere := sceneObj.Spheres[hit.Index]
	point := ray.At(hit.T)
	outward := sphere.Normal(point)
	normal := geometry.FaceNormal(ray, outward)

	response := InspectResponse{
		Hit:         true,
		SphereIndex: hit.Index,
		IsLight:     sceneObj.IsLight(hit.Index),
		Point:       [3]float64{point.X, point.Y, point.Z},
		Normal:      [3]float64{normal.X, normal.Y, normal.Z},
		Distance:    hit.T,
		FrontFace:   normal == outward,
		Radius:      sphere.Radius,
		Albedo:      [3]float64{sphere.Albedo.X, sphere.Albedo.Y, sphere.Albedo.Z},
	}
	if response.IsLight {
		response.Emission = [3]float64{sceneObj.Emission.X, sceneObj.Emission.Y, sceneObj.Emission.Z}
	}
	return response
}

// handleInspect handles ray casting inspection requests
func (s *Server) handleInspect(w http.ResponseWriter, r *http.Request) {
	req, err := s.parseRenderRequest(r)
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

	sceneObj, err := s.createScene(req.Scene)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	writeJSON(w, http.StatusOK, inspectPixel(sceneObj, req.Width, req.Height, pixelX, pixelY))
}
