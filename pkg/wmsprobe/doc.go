// Package wmsprobe exercises a WMS server's demo surface: it renders the
// server's layer menu as nested HTML, fetches documents, and builds GetMap
// URLs from SLD text.
//
// Quick start:
//
//	p, err := wmsprobe.New("http://localhost:8080/ncWMS2/wms")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	html, err := p.Menu(ctx)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(html)
//
//	fmt.Println(p.MapURL(sld)) // point an <img> at this
//
// A Probe is safe for concurrent use.
package wmsprobe
