package kata

import (
	"errors"
	"sort"
	"strings"
)

var (
	ErrCityName       = errors.New("el nombre de la ciudad no puede estar vacío")
	ErrCityPopulation = errors.New("la población no puede ser negativa")
	ErrCityNotFound   = errors.New("ciudad no encontrada")
	ErrCityExists     = errors.New("la ciudad ya existe")
)

type City struct {
	Name       string
	Population int
}

// Cities is a population registry keyed by name.
type Cities struct {
	byName map[string]int
}

func NewCities() *Cities {
	return &Cities{byName: make(map[string]int)}
}

// Add inserts a city or replaces the population of an existing one.
func (c *Cities) Add(name string, population int) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrCityName
	}
	if population < 0 {
		return ErrCityPopulation
	}
	c.byName[name] = population
	return nil
}

// Edit changes the population of a known city.
func (c *Cities) Edit(name string, population int) error {
	name = strings.TrimSpace(name)
	if _, ok := c.byName[name]; !ok {
		return ErrCityNotFound
	}
	if population < 0 {
		return ErrCityPopulation
	}
	c.byName[name] = population
	return nil
}

func (c *Cities) Rename(from, to string) error {
	from, to = strings.TrimSpace(from), strings.TrimSpace(to)
	pop, ok := c.byName[from]
	if !ok {
		return ErrCityNotFound
	}
	if to == "" {
		return ErrCityName
	}
	if from == to {
		return nil
	}
	if _, taken := c.byName[to]; taken {
		return ErrCityExists
	}
	delete(c.byName, from)
	c.byName[to] = pop
	return nil
}

func (c *Cities) Delete(name string) error {
	name = strings.TrimSpace(name)
	if _, ok := c.byName[name]; !ok {
		return ErrCityNotFound
	}
	delete(c.byName, name)
	return nil
}

func (c *Cities) Len() int {
	return len(c.byName)
}

// List returns the cities sorted by name.
func (c *Cities) List() []City {
	list := make([]City, 0, len(c.byName))
	for name, pop := range c.byName {
		list = append(list, City{Name: name, Population: pop})
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Name < list[j].Name })
	return list
}

// Largest breaks ties by name so the answer is stable.
func (c *Cities) Largest() (City, bool) {
	return c.pick(func(a, b City) bool { return a.Population > b.Population })
}

func (c *Cities) Smallest() (City, bool) {
	return c.pick(func(a, b City) bool { return a.Population < b.Population })
}

func (c *Cities) pick(better func(a, b City) bool) (City, bool) {
	list := c.List()
	if len(list) == 0 {
		return City{}, false
	}
	best := list[0]
	for _, city := range list[1:] {
		if better(city, best) {
			best = city
		}
	}
	return best, true
}
