// Package geo расчет расстояний между координатами WGS-84.
//
// Земля считается сферой со средним радиусом EarthRadiusMeters, расстояние считается
// по формуле гаверсинусов. Для геозон радиусом от метров до километров погрешность
// сферической модели пренебрежимо мала.
package geo

import (
	"errors"
	"fmt"
	"math"
)

// EarthRadiusMeters средний радиус Земли.
const EarthRadiusMeters = 6_371_000.0

// ErrInvalidCoordinate координата вне допустимого диапазона.
var ErrInvalidCoordinate = errors.New("invalid coordinate")

// Point точка на поверхности Земли в градусах.
type Point struct {
	Lat float64 `json:"latitude"`
	Lng float64 `json:"longitude"`
}

// Validate проверяет что широта в [-90, 90], а долгота в [-180, 180].
func (p Point) Validate() error {
	if math.IsNaN(p.Lat) || p.Lat < -90 || p.Lat > 90 {
		return fmt.Errorf("%w: latitude %v", ErrInvalidCoordinate, p.Lat)
	}
	if math.IsNaN(p.Lng) || p.Lng < -180 || p.Lng > 180 {
		return fmt.Errorf("%w: longitude %v", ErrInvalidCoordinate, p.Lng)
	}
	return nil
}

// Distance возвращает расстояние между точками в метрах.
//
// Параметры:
//   - a, b: точки, порядок не важен
//
// Возвращает:
//   - float64: расстояние, всегда >= 0
//   - error: ErrInvalidCoordinate если хотя бы одна точка некорректна
func Distance(a, b Point) (float64, error) {
	if err := a.Validate(); err != nil {
		return 0, err
	}
	if err := b.Validate(); err != nil {
		return 0, err
	}
	return haversine(a, b), nil
}

// Within проверяет попадание точки в круг. Граница включается.
func Within(p, center Point, radiusMeters float64) (bool, float64, error) {
	d, err := Distance(p, center)
	if err != nil {
		return false, 0, err
	}
	return d <= radiusMeters, d, nil
}

func haversine(a, b Point) float64 {
	// Сортируем точки, чтобы результат был побитово симметричен.
	if a.Lat > b.Lat || (a.Lat == b.Lat && a.Lng > b.Lng) {
		a, b = b, a
	}
	phi1 := toRadians(a.Lat)
	phi2 := toRadians(b.Lat)
	dPhi := toRadians(b.Lat - a.Lat)
	dLambda := toRadians(b.Lng - a.Lng)

	sinPhi := math.Sin(dPhi / 2)       //nolint:mnd
	sinLambda := math.Sin(dLambda / 2) //nolint:mnd
	h := sinPhi*sinPhi + math.Cos(phi1)*math.Cos(phi2)*sinLambda*sinLambda
	// Ошибки округления могут вывести h чуть за 1 для антиподов.
	h = math.Min(1, math.Max(0, h))

	return 2 * EarthRadiusMeters * math.Atan2(math.Sqrt(h), math.Sqrt(1-h)) //nolint:mnd
}

// Destination возвращает точку на расстоянии meters от p по азимуту bearingDeg.
func Destination(p Point, bearingDeg, meters float64) Point {
	delta := meters / EarthRadiusMeters
	theta := toRadians(bearingDeg)
	phi1 := toRadians(p.Lat)
	lambda1 := toRadians(p.Lng)

	phi2 := math.Asin(math.Sin(phi1)*math.Cos(delta) + math.Cos(phi1)*math.Sin(delta)*math.Cos(theta))
	lambda2 := lambda1 + math.Atan2(
		math.Sin(theta)*math.Sin(delta)*math.Cos(phi1),
		math.Cos(delta)-math.Sin(phi1)*math.Sin(phi2),
	)

	lng := math.Mod(toDegrees(lambda2)+540, 360) - 180 //nolint:mnd
	return Point{Lat: toDegrees(phi2), Lng: lng}
}

func toRadians(deg float64) float64 {
	return deg * math.Pi / 180 //nolint:mnd
}

func toDegrees(rad float64) float64 {
	return rad * 180 / math.Pi //nolint:mnd
}
