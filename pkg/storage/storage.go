// Package storage persists named device profiles: the sensor orientation
// and candidate size lists planning needs for each camera.
package storage

import (
	"fmt"
	"os"
	"path"
	"time"

	"github.com/goccy/go-json"

	"preview-planner/pkg/geometry"
	"preview-planner/pkg/storage/consts"
	"preview-planner/pkg/storage/util"
)

// Profile is one camera's capability snapshot.
type Profile struct {
	Name string `json:"name"`
	Info string `json:"info,omitempty"`

	// Degrees the sensor is mounted at, normalized to 0/90/180/270.
	SensorOrientation int `json:"sensorOrientation"`

	CaptureSizes []geometry.Size `json:"captureSizes"`
	PreviewSizes []geometry.Size `json:"previewSizes"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type Storage struct {
	dir string
}

func New(dir string) (*Storage, error) {
	if dir == "" {
		return nil, fmt.Errorf("storage dir can not be empty")
	}
	if err := util.MkdirAll(dir); err != nil {
		return nil, err
	}
	s := &Storage{dir: dir}
	if err := s.checkInfoFile(); err != nil {
		return nil, err
	}

	return s, nil
}

func (s *Storage) Close() error {
	return nil
}

func (s *Storage) Dir() string {
	return s.dir
}

func (s *Storage) ListProfiles() ([]*Profile, error) {
	data, err := os.ReadFile(s.infoPath())
	if err != nil {
		return nil, err
	}
	var list []*Profile
	if err = json.Unmarshal(data, &list); err != nil {
		return nil, err
	}

	return list, nil
}

// GetProfile returns nil without error when the profile does not exist.
func (s *Storage) GetProfile(name string) (*Profile, error) {
	list, err := s.ListProfiles()
	if err != nil {
		return nil, err
	}
	for _, p := range list {
		if p.Name == name {
			return p, nil
		}
	}

	return nil, nil
}

func (s *Storage) NewProfile(p *Profile) (*Profile, error) {
	if p.Name == "" {
		return nil, fmt.Errorf("name can not be empty")
	}

	list, err := s.ListProfiles()
	if err != nil {
		return nil, err
	}
	for _, existing := range list {
		if existing.Name == p.Name {
			return nil, fmt.Errorf("profile name already exists")
		}
	}
	now := time.Now()
	p.CreatedAt = now
	p.UpdatedAt = now
	list = append(list, p)

	return p, s.dumpProfiles(list)
}

func (s *Storage) UpdateProfile(p *Profile) error {
	list, err := s.ListProfiles()
	if err != nil {
		return err
	}
	for i, existing := range list {
		if existing.Name == p.Name {
			p.CreatedAt = existing.CreatedAt
			p.UpdatedAt = time.Now()
			list[i] = p
			return s.dumpProfiles(list)
		}
	}

	return fmt.Errorf("profile %s does not exist", p.Name)
}

func (s *Storage) DeleteProfile(name string) error {
	list, err := s.ListProfiles()
	if err != nil {
		return err
	}
	for i, existing := range list {
		if existing.Name == name {
			return s.dumpProfiles(append(list[:i], list[i+1:]...))
		}
	}

	return fmt.Errorf("profile %s does not exist", name)
}

func (s *Storage) dumpProfiles(list []*Profile) error {
	data, err := json.Marshal(list)
	if err != nil {
		return err
	}

	return os.WriteFile(s.infoPath(), data, consts.DefaultFilePerm)
}

func (s *Storage) infoPath() string {
	return path.Join(s.dir, consts.DefaultInfoFile)
}

func (s *Storage) checkInfoFile() error {
	_, err := os.Stat(s.infoPath())
	if os.IsNotExist(err) {
		return s.dumpProfiles(make([]*Profile, 0))
	}

	return err
}
