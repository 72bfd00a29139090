package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlugify(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"Frutas", "frutas"},
		{"Frutas Tropicales", "frutas_tropicales"},
		{"nombre  doble", "nombre__doble"},
		{"Año-Nuevo 2024!", "año-nuevo_2024!"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Slugify(tt.name))
		})
	}
}

func TestNextSlug(t *testing.T) {
	tests := []struct {
		name     string
		existing []string
		want     string
	}{
		{"free", nil, "x"},
		{"bare taken", []string{"x"}, "x1"},
		{"sequence", []string{"x", "x1"}, "x2"},
		{"past nine", []string{"x", "x1", "x2", "x3", "x4", "x5", "x6", "x7", "x8", "x9", "x10"}, "x11"},
		{"unordered input", []string{"x10", "x", "x2"}, "x11"},
		{"only suffixed", []string{"x3"}, "x4"},
		{"other shapes ignored", []string{"x_2", "xa", "x1b", "y1"}, "x"},
		{"mixed", []string{"x", "x_tropical", "x7"}, "x8"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NextSlug(tt.existing, "x"))
		})
	}
}

func TestNextSlugRealisticNames(t *testing.T) {
	existing := []string{"nombre_parametro", "nombre_parametro1", "nombre_parametro_extra"}

	assert.Equal(t, "nombre_parametro2", NextSlug(existing, "nombre_parametro"))
}
