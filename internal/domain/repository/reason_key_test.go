package repository_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/Estoque-api/internal/domain/repository"
)

func TestReasonKey(t *testing.T) {
	assert.Equal(t, repository.ReasonKey("Venda"), repository.ReasonKey("VENDA"))
	assert.Equal(t, repository.ReasonKey("reposição"), repository.ReasonKey(" REPOSIÇÃO "))
	assert.NotEqual(t, repository.ReasonKey("venda"), repository.ReasonKey("vendas"))
}
