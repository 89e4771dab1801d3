package directory

import (
	"encoding/json"
	"os"
	"sort"

	"github.com/go-playground/validator/v10"

	"github.com/gabrielsantosba/caminho/pkg/geo"
	"github.com/gabrielsantosba/caminho/pkg/util"
	"go.uber.org/zap"
)

// Entity is a named destination with a fixed coordinate.
type Entity struct {
	Name  string
	Coord geo.Coordinate
}

type entryFile struct {
	Friends map[string]entry `json:"friends"`
	Places  map[string]entry `json:"places"`
}

type entry struct {
	Latitude  float64 `json:"latitude" validate:"min=-90,max=90"`
	Longitude float64 `json:"longitude" validate:"min=-180,max=180"`
}

// Directory is the read-only name -> entity lookup, loaded once at startup.
type Directory struct {
	entities map[string]Entity
	friends  map[string]geo.Coordinate
	places   map[string]geo.Coordinate
}

// Load reads the friends/places file, validates every coordinate and merges
// both groups into a single lookup. Place names win over friend names on
// collision.
func Load(path string, log *zap.Logger) (*Directory, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, util.WrapErrorf(err, util.ErrInternalServerError, "reading entity directory %s", path)
	}

	var file entryFile
	if err := json.Unmarshal(raw, &file); err != nil {
		return nil, util.WrapErrorf(err, util.ErrInternalServerError, "decoding entity directory %s", path)
	}

	validate := validator.New()
	d := &Directory{
		entities: make(map[string]Entity, len(file.Friends)+len(file.Places)),
		friends:  make(map[string]geo.Coordinate, len(file.Friends)),
		places:   make(map[string]geo.Coordinate, len(file.Places)),
	}
	for i, group := range []map[string]entry{file.Friends, file.Places} {
		for name, e := range group {
			if err := validate.Struct(e); err != nil {
				return nil, util.WrapErrorf(err, util.ErrBadParamInput,
					"entity %q has an out-of-range coordinate", name)
			}
			coord := geo.NewCoordinate(e.Latitude, e.Longitude)
			d.entities[name] = Entity{Name: name, Coord: coord}
			if i == 0 {
				d.friends[name] = coord
			} else {
				d.places[name] = coord
			}
		}
	}

	log.Info("loaded entity directory",
		zap.String("path", path),
		zap.Int("friends", len(file.Friends)),
		zap.Int("places", len(file.Places)))

	return d, nil
}

// Get looks a destination up by name.
func (d *Directory) Get(name string) (Entity, bool) {
	e, ok := d.entities[name]
	return e, ok
}

// Names returns all known entity names, sorted.
func (d *Directory) Names() []string {
	names := make([]string, 0, len(d.entities))
	for name := range d.entities {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Friends returns the friends group view for the listing endpoint.
func (d *Directory) Friends() map[string]geo.Coordinate {
	return d.friends
}

// Places returns the places group view for the listing endpoint.
func (d *Directory) Places() map[string]geo.Coordinate {
	return d.places
}
