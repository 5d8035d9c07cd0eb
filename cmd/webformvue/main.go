// Command webformvue serves webform definitions in the vue-form-generator
// format and forwards submissions to the configured backend.
package main

func main() {
	Execute()
}
