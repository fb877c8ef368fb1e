package config

import (
	"fmt"
	"os"

	"estate/models"

	"gopkg.in/yaml.v3"
)

// Seed - справочные данные, загружаемые при старте
type Seed struct {
	PropertyTypes []SeedPropertyType `yaml:"property_types"`
	PropertyTags  []SeedPropertyTag  `yaml:"property_tags"`
	Users         []SeedUser         `yaml:"users"`
}

type SeedPropertyType struct {
	Name     string `yaml:"name"`
	Sequence int    `yaml:"sequence"`
}

type SeedPropertyTag struct {
	Name  string `yaml:"name"`
	Color int    `yaml:"color"`
}

type SeedUser struct {
	Login string `yaml:"login"`
	Name  string `yaml:"name"`
}

func LoadSeed(path string) (*Seed, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read seed file: %w", err)
	}
	var seed Seed
	if err := yaml.Unmarshal(data, &seed); err != nil {
		return nil, fmt.Errorf("parse seed file %s: %w", path, err)
	}
	return &seed, nil
}

func (s *Seed) Types() []models.PropertyType {
	types := make([]models.PropertyType, 0, len(s.PropertyTypes))
	for _, t := range s.PropertyTypes {
		types = append(types, models.PropertyType{Name: t.Name, Sequence: t.Sequence})
	}
	return types
}

func (s *Seed) Tags() []models.PropertyTag {
	tags := make([]models.PropertyTag, 0, len(s.PropertyTags))
	for _, t := range s.PropertyTags {
		tags = append(tags, models.PropertyTag{Name: t.Name, Color: t.Color})
	}
	return tags
}

func (s *Seed) UserList() []models.User {
	users := make([]models.User, 0, len(s.Users))
	for _, u := range s.Users {
		users = append(users, models.User{Login: u.Login, Name: u.Name})
	}
	return users
}
