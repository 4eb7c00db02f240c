// Package serializer renders parsed records and reports as JSON, YAML or an
// aligned text table, to stdout or to a file.
//
//	w, err := serializer.NewFileWriterOrStdout(serializer.FormatYAML, "-")
//	if err != nil {
//	    return err
//	}
//	err = w.Serialize(ctx, rec)
package serializer
