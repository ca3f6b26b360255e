package differ

import (
	"fmt"
	"strings"

	"github.com/ditashi/jsbeautifier-go/jsbeautifier"
)

var scriptContentTypes = []string{"javascript", "ecmascript", "x-javascript", "json"}

// IsScriptLike reports whether contentType names JavaScript or JSON.
func IsScriptLike(contentType string) bool {
	ct := strings.ToLower(contentType)
	for _, marker := range scriptContentTypes {
		if strings.Contains(ct, marker) {
			return true
		}
	}
	return false
}

// Beautify reformats script source with tab indentation.
func Beautify(source string) (out string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("beautifier panicked: %v", r)
		}
	}()

	opts := jsbeautifier.DefaultOptions()
	opts["indent_with_tabs"] = true
	opts["keep_function_indentation"] = false

	return jsbeautifier.Beautify(&source, opts)
}
