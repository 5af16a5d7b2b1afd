package aaspydantic

import (
	"reflect"

	"go.uber.org/zap"

	"github.com/SebBehrendt/aas-pydantic/basyx"
)

// Converter is the bulk entry point over the conversion functions, carrying
// cross-cutting options. The zero-value behavior is identical to calling the
// package-level functions directly.
type Converter struct {
	log *zap.Logger
}

// Option configures a Converter.
type Option func(*Converter)

// WithLogger routes conversion progress to the given logger.
func WithLogger(l *zap.Logger) Option {
	return func(c *Converter) { c.log = l }
}

// NewConverter builds a Converter. Without WithLogger it stays silent.
func NewConverter(opts ...Option) *Converter {
	c := &Converter{log: zap.NewNop()}
	for _, o := range opts {
		o(c)
	}
	return c
}

// SubmodelFromModel converts a submodel model value into a tree submodel.
func (c *Converter) SubmodelFromModel(model any) (*basyx.Submodel, error) {
	sm, err := SubmodelFromModel(model)
	if err != nil {
		c.log.Error("encode submodel failed", zap.String("type", typeNameOf(model)), zap.Error(err))
		return nil, err
	}
	c.log.Debug("encoded submodel",
		zap.String("type", typeNameOf(model)),
		zap.String("id", sm.ID),
		zap.Int("elements", len(sm.SubmodelElements)))
	return sm, nil
}

// AASFromModel converts a shell model value into an environment.
func (c *Converter) AASFromModel(model any) (*basyx.Environment, error) {
	env, err := AASFromModel(model)
	if err != nil {
		c.log.Error("encode shell failed", zap.String("type", typeNameOf(model)), zap.Error(err))
		return nil, err
	}
	c.log.Debug("encoded shell", zap.Int("submodels", len(env.Submodels)))
	return env, nil
}

// SubmodelTemplateFromType converts a submodel model type into a template.
func (c *Converter) SubmodelTemplateFromType(t reflect.Type) (*basyx.Submodel, error) {
	sm, err := SubmodelTemplateFromType(t)
	if err != nil {
		c.log.Error("encode template failed", zap.String("type", t.String()), zap.Error(err))
		return nil, err
	}
	c.log.Debug("encoded template", zap.String("id", sm.ID))
	return sm, nil
}

// AASTemplateFromType converts a shell model type into a template
// environment.
func (c *Converter) AASTemplateFromType(t reflect.Type) (*basyx.Environment, error) {
	env, err := AASTemplateFromType(t)
	if err != nil {
		c.log.Error("encode shell template failed", zap.String("type", t.String()), zap.Error(err))
		return nil, err
	}
	c.log.Debug("encoded shell template", zap.Int("submodels", len(env.Submodels)))
	return env, nil
}

// DecodeSubmodel populates a model struct from a tree submodel.
func (c *Converter) DecodeSubmodel(sm *basyx.Submodel, out any) error {
	if err := DecodeSubmodel(sm, out); err != nil {
		c.log.Error("decode submodel failed", zap.String("id", sm.ID), zap.Error(err))
		return err
	}
	c.log.Debug("decoded submodel", zap.String("id", sm.ID), zap.String("type", typeNameOf(out)))
	return nil
}

// DecodeAAS populates a shell model struct from an environment.
func (c *Converter) DecodeAAS(env *basyx.Environment, shell *basyx.AssetAdministrationShell, out any) error {
	if err := DecodeAAS(env, shell, out); err != nil {
		c.log.Error("decode shell failed", zap.String("id", shell.ID), zap.Error(err))
		return err
	}
	c.log.Debug("decoded shell", zap.String("id", shell.ID))
	return nil
}

// TemplateTypes reconstructs the type descriptions of every submodel in the
// environment.
func (c *Converter) TemplateTypes(env *basyx.Environment) ([]*TemplateType, error) {
	types, err := TemplateTypesFromEnvironment(env)
	if err != nil {
		c.log.Error("introspect templates failed", zap.Error(err))
		return nil, err
	}
	c.log.Debug("introspected templates", zap.Int("types", len(types)))
	return types, nil
}

func typeNameOf(v any) string {
	t := reflect.TypeOf(v)
	if t == nil {
		return "<nil>"
	}
	if t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	return t.Name()
}
