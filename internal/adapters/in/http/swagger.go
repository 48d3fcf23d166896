package http

import (
	"sync"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/swaggo/swag"
)

var registerDocOnce sync.Once

// openAPIDoc serves the embedded OpenAPI document to the swagger UI.
type openAPIDoc struct {
	json string
}

func (d openAPIDoc) ReadDoc() string {
	return d.json
}

// registerSwaggerDoc publishes the document under swag's default instance name, which is
// where echo-swagger reads doc.json from. Only the first registration takes effect.
func registerSwaggerDoc(swagger *openapi3.T) error {
	data, err := swagger.MarshalJSON()
	if err != nil {
		return err
	}

	registerDocOnce.Do(func() {
		swag.Register(swag.Name, openAPIDoc{json: string(data)})
	})
	return nil
}
