// Package factory provides a small generic registry used to instantiate
// pluggable modules (metrics sinks, journal backends) from configuration.
// Modules are defined by a type string and a map of raw settings decoded
// with mapstructure using json tags.
//
//	reg := factory.NewRegistry[io.Reader]()
//	reg.Register("file", func(conf map[string]any) (io.Reader, error) {
//	    var c struct{ Path string `json:"path"` }
//	    if err := factory.Decode(conf, &c); err != nil {
//	        return nil, err
//	    }
//	    return os.Open(c.Path)
//	})
package factory
