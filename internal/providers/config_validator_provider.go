package providers

import (
	"errors"
	"spotter/internal/structures"

	"github.com/gookit/validate"
)

type CnfValidator struct {
	conf *structures.Config
}

func NewCnfValidator(conf *structures.Config) *CnfValidator {
	return &CnfValidator{conf: conf}
}

func (cv *CnfValidator) Validate() error {
	v := validate.Struct(cv.conf)
	if !v.Validate() {
		return v.Errors
	}

	switch cv.conf.Remote.Driver {
	case "rest":
		if cv.conf.Remote.URL == "" {
			return errors.New("remote.url is required for the rest driver")
		}
	case "sqlite":
		if cv.conf.Remote.SqlitePath == "" {
			return errors.New("remote.sqlitePath is required for the sqlite driver")
		}
	}
	return nil
}
