package mock

import (
	"context"

	"github.com/fwojciec/epidoc"
)

var _ epidoc.Engine = (*Engine)(nil)

// Engine is a mock implementation of epidoc.Engine.
type Engine struct {
	NameFn              func() string
	VersionFn           func(ctx context.Context) (string, error)
	ParseXMLFn          func(text string) epidoc.Document
	CompileFn           func(path string)
	SetSourceFn         func(doc epidoc.Document)
	SetParameterFn      func(name, value string)
	SetPropertyFn       func(name, value string)
	ClearParametersFn   func()
	ClearPropertiesFn   func()
	TransformToStringFn func(ctx context.Context) (string, error)
	ErrorsFn            func() epidoc.ErrorLog
}

func (e *Engine) Name() string {
	return e.NameFn()
}

func (e *Engine) Version(ctx context.Context) (string, error) {
	return e.VersionFn(ctx)
}

func (e *Engine) ParseXML(text string) epidoc.Document {
	return e.ParseXMLFn(text)
}

func (e *Engine) Compile(path string) {
	e.CompileFn(path)
}

func (e *Engine) SetSource(doc epidoc.Document) {
	e.SetSourceFn(doc)
}

func (e *Engine) SetParameter(name, value string) {
	e.SetParameterFn(name, value)
}

func (e *Engine) SetProperty(name, value string) {
	e.SetPropertyFn(name, value)
}

func (e *Engine) ClearParameters() {
	e.ClearParametersFn()
}

func (e *Engine) ClearProperties() {
	e.ClearPropertiesFn()
}

func (e *Engine) TransformToString(ctx context.Context) (string, error) {
	return e.TransformToStringFn(ctx)
}

func (e *Engine) Errors() epidoc.ErrorLog {
	return e.ErrorsFn()
}
