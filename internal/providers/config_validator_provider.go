package providers

import (
	"snappy/internal/structures"

	"github.com/gookit/validate"
)

type CnfValidator struct {
	conf *structures.Config
}

func NewCnfValidator(conf *structures.Config) *CnfValidator {
	return &CnfValidator{conf: conf}
}

func (c *CnfValidator) Validate() error {
	v := validate.Struct(c.conf)
	if !v.Validate() {
		return v.Errors
	}
	return c.validateDependent()
}

// validateDependent covers rules that depend on another field being switched on.
func (c *CnfValidator) validateDependent() error {
	errs := validate.Errors{}
	if c.conf.Cache.Enabled && c.conf.Cache.Size < 0 {
		errs.Add("cache.size", "min", "cache.size must not be negative")
	}
	if c.conf.Cache.TTL < 0 {
		errs.Add("cache.ttl", "min", "cache.ttl must not be negative")
	}
	if c.conf.Artifacts.Enabled && c.conf.Artifacts.Dir == "" {
		errs.Add("artifacts.dir", "required", "artifacts.dir is required when artifacts are enabled")
	}
	if errs.Empty() {
		return nil
	}
	return errs
}
