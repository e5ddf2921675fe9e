package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/maizeyield/backend/internal/domain"
)

func TestCatalogZeroValueNotReady(t *testing.T) {
	var catalog domain.Catalog

	assert.False(t, catalog.Ready())
	assert.False(t, catalog.HasState("Abia"))
	assert.Empty(t, catalog.States())
}

func TestCatalogCopiesInput(t *testing.T) {
	states := []string{"Abia", "Kano"}
	grades := []string{"Grade A"}

	catalog := domain.NewCatalog(states, grades)
	states[0] = "mutated"

	assert.True(t, catalog.HasState("Abia"))
	assert.False(t, catalog.HasState("mutated"))
}

func TestCatalogPreservesOrder(t *testing.T) {
	catalog := domain.NewCatalog([]string{"Kano", "Abia"}, []string{"Grade B", "Grade A"})

	assert.Equal(t, []string{"Kano", "Abia"}, catalog.States())
	assert.Equal(t, []string{"Grade B", "Grade A"}, catalog.Grades())
}

func TestCatalogAccessorsReturnCopies(t *testing.T) {
	catalog := domain.NewCatalog([]string{"Abia"}, []string{"Grade A"})

	out := catalog.States()
	out[0] = "mutated"

	assert.True(t, catalog.HasState("Abia"))
}
