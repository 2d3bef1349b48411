package mderror_test

import (
	"net/http"
	"testing"

	"github.com/markpad/markpad/internal/mderror"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

func TestMDError(t *testing.T) {
	err := mderror.New(mderror.KindNetwork, "some message")

	assert.Equal(t, "some message", err.Error())
	assert.Equal(t, mderror.KindNetwork, mderror.KindOf(err))
	assert.Equal(t, http.StatusInternalServerError, mderror.StatusCode(err))
}

func TestMDErrorValidation(t *testing.T) {
	err := mderror.Validation("empty document")

	assert.Equal(t, "empty document", err.Error())
	assert.Equal(t, mderror.KindValidation, mderror.KindOf(err))
	assert.Equal(t, http.StatusBadRequest, mderror.StatusCode(err))
}

func TestMDErrorForeign(t *testing.T) {
	err := errors.New("boom")

	assert.Equal(t, mderror.Kind(""), mderror.KindOf(err))
	assert.Equal(t, http.StatusInternalServerError, mderror.StatusCode(err))
}
