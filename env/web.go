package env

import (
	"net/http"
	"reflect"

	"github.com/gorilla/mux"
	"github.com/spf13/afero"
)

// WebContextClass is the fully-qualified name of the marker type whose
// presence in a container's type registry means web support is available.
var WebContextClass = TypeName(reflect.TypeOf((*GenericWebApplicationContext)(nil)))

// WebApplicationContext is a resource loader that can also serve HTTP.
type WebApplicationContext interface {
	ResourceLoader
	Handler() http.Handler
}

// GenericWebApplicationContext routes requests through a gorilla/mux router
// and loads resources from an afero filesystem.
type GenericWebApplicationContext struct {
	*DefaultResourceLoader
	router *mux.Router
}

// NewGenericWebApplicationContext creates a web context reading resources from fs.
func NewGenericWebApplicationContext(fs afero.Fs) *GenericWebApplicationContext {
	return &GenericWebApplicationContext{
		DefaultResourceLoader: NewDefaultResourceLoader(fs),
		router:                mux.NewRouter(),
	}
}

// Handle registers h for path.
func (c *GenericWebApplicationContext) Handle(path string, h http.Handler) *mux.Route {
	return c.router.Handle(path, h)
}

// HandleFunc registers f for path.
func (c *GenericWebApplicationContext) HandleFunc(path string, f func(http.ResponseWriter, *http.Request)) *mux.Route {
	return c.router.HandleFunc(path, f)
}

func (c *GenericWebApplicationContext) Handler() http.Handler {
	return c.router
}
