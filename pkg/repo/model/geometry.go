package model

import (
	"database/sql/driver"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/encoding/ewkb"
	"github.com/paulmach/orb/encoding/wkt"
	"github.com/paulmach/orb/geo"
	"github.com/paulmach/orb/geojson"
	"github.com/paulmach/orb/planar"
	"gorm.io/gorm"
	"gorm.io/gorm/schema"

	"github.com/scienceol/osfarm/pkg/common/code"
	"github.com/scienceol/osfarm/pkg/middleware/db"
)

const SRID = 4326

// Polygon is a WGS84 footprint. PostGIS stores it as geometry(Polygon,4326);
// other engines keep its EWKT text.
type Polygon orb.Polygon

func (p Polygon) Orb() orb.Polygon { return orb.Polygon(p) }

func (p Polygon) IsEmpty() bool { return len(p) == 0 }

// EWKT renders the polygon with its SRID prefix.
func (p Polygon) EWKT() string {
	return fmt.Sprintf("SRID=%d;%s", SRID, wkt.MarshalString(p.Orb()))
}

// Validate checks ring closure, ring size, coordinate bounds and that the
// outer ring encloses an area.
func (p Polygon) Validate() error {
	if len(p) == 0 {
		return code.GeometryErr.WithMsg("polygon has no rings")
	}
	for i, ring := range p {
		if len(ring) < 4 {
			return code.GeometryErr.WithMsgf("ring %d has %d positions, need at least 4", i, len(ring))
		}
		if !ring.Closed() {
			return code.GeometryErr.WithMsgf("ring %d is not closed", i)
		}
		for _, pt := range ring {
			if math.IsNaN(pt.Lon()) || math.IsNaN(pt.Lat()) ||
				pt.Lon() < -180 || pt.Lon() > 180 || pt.Lat() < -90 || pt.Lat() > 90 {
				return code.GeometryErr.WithMsgf("ring %d has position %v outside WGS84 bounds", i, pt)
			}
		}
	}
	if planar.Area(p[0]) == 0 {
		return code.GeometryErr.WithMsg("outer ring is degenerate")
	}
	return nil
}

// AreaSqm is the geodesic area of the polygon in square metres.
func (p Polygon) AreaSqm() float64 {
	return geo.Area(p.Orb())
}

// PerimeterM is the geodesic length of the outer ring in metres.
func (p Polygon) PerimeterM() float64 {
	if len(p) == 0 {
		return 0
	}
	return geo.Length(orb.LineString(p[0]))
}

// ParsePolygonText reads WKT or EWKT. An EWKT SRID other than 4326 is a
// geometry error.
func ParsePolygonText(s string) (Polygon, error) {
	s = strings.TrimSpace(s)
	if head, body, ok := strings.Cut(s, ";"); ok && strings.HasPrefix(strings.ToUpper(head), "SRID=") {
		srid, err := strconv.Atoi(strings.TrimSpace(head[len("SRID="):]))
		if err != nil {
			return nil, code.GeometryErr.WithMsgf("bad srid %q", head)
		}
		if srid != SRID {
			return nil, code.GeometryErr.WithMsgf("srid %d not supported, want %d", srid, SRID)
		}
		s = body
	}
	poly, err := wkt.UnmarshalPolygon(s)
	if err != nil {
		return nil, code.GeometryErr.WithMsg("boundary is not a WKT polygon").WithErr(err)
	}
	return Polygon(poly), nil
}

func (p Polygon) MarshalJSON() ([]byte, error) {
	if p == nil {
		return []byte("null"), nil
	}
	return json.Marshal(geojson.NewGeometry(p.Orb()))
}

// ParsePolygonGeoJSON reads a GeoJSON geometry object of type Polygon. Any
// decode failure is a geometry error.
func ParsePolygonGeoJSON(b []byte) (Polygon, error) {
	g, err := geojson.UnmarshalGeometry(b)
	if err != nil {
		return nil, code.GeometryErr.WithMsg("boundary is not a GeoJSON geometry").WithErr(err)
	}
	poly, ok := g.Geometry().(orb.Polygon)
	if !ok {
		return nil, code.GeometryErr.WithMsgf("geometry type %s, want Polygon", g.Type)
	}
	return Polygon(poly), nil
}

func (p *Polygon) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		*p = nil
		return nil
	}
	poly, err := ParsePolygonGeoJSON(b)
	if err != nil {
		return err
	}
	*p = poly
	return nil
}

func (p Polygon) Value() (driver.Value, error) {
	if p == nil {
		return nil, nil
	}
	return p.EWKT(), nil
}

// Scan reads PostGIS hex EWKB, raw EWKB or (E)WKT text.
func (p *Polygon) Scan(value any) error {
	var raw []byte
	switch v := value.(type) {
	case nil:
		*p = nil
		return nil
	case string:
		raw = []byte(v)
	case []byte:
		raw = v
	default:
		return fmt.Errorf("cannot scan %T into Polygon", value)
	}
	if len(raw) == 0 {
		*p = nil
		return nil
	}

	if isHex(raw) {
		decoded := make([]byte, hex.DecodedLen(len(raw)))
		if _, err := hex.Decode(decoded, raw); err == nil {
			raw = decoded
		}
	}
	if raw[0] == 0 || raw[0] == 1 {
		g, _, err := ewkb.Unmarshal(raw)
		if err != nil {
			return err
		}
		poly, ok := g.(orb.Polygon)
		if !ok {
			return fmt.Errorf("stored geometry is %s, want Polygon", g.GeoJSONType())
		}
		*p = Polygon(poly)
		return nil
	}

	poly, err := ParsePolygonText(string(raw))
	if err != nil {
		return err
	}
	*p = poly
	return nil
}

func isHex(b []byte) bool {
	if len(b)%2 != 0 {
		return false
	}
	for _, c := range b {
		if !(c >= '0' && c <= '9' || c >= 'a' && c <= 'f' || c >= 'A' && c <= 'F') {
			return false
		}
	}
	return true
}

func (Polygon) GormDataType() string {
	return "geometry"
}

func (Polygon) GormDBDataType(g *gorm.DB, _ *schema.Field) string {
	if g.Dialector.Name() != db.DriverPostgres {
		return "text"
	}
	if v, ok := g.Get(db.SpatialSetting); ok {
		if spatial, _ := v.(bool); !spatial {
			return "text"
		}
	}
	return fmt.Sprintf("geometry(Polygon,%d)", SRID)
}
