// Command narrowphase loads a YAML scene and reports every overlapping pair,
// the separation of every disjoint pair and the hits of every ray.
//
//	narrowphase -scene scene.yaml [-format text|msgpack] [-workers N] [-v]
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/akmonengine/feather2d"
	"github.com/akmonengine/feather2d/contact"
	"github.com/akmonengine/feather2d/internal/scene"
	"github.com/vmihailenco/msgpack/v5"
)

type namedContact struct {
	BodyA       string              `msgpack:"body_a"`
	BodyB       string              `msgpack:"body_b"`
	Penetration contact.Penetration `msgpack:"penetration"`
}

type namedProximity struct {
	BodyA      string             `msgpack:"body_a"`
	BodyB      string             `msgpack:"body_b"`
	Separation contact.Separation `msgpack:"separation"`
}

type namedHit struct {
	Ray     string          `msgpack:"ray"`
	Body    string          `msgpack:"body"`
	Raycast contact.Raycast `msgpack:"raycast"`
}

type report struct {
	Contacts    []namedContact   `msgpack:"contacts"`
	Proximities []namedProximity `msgpack:"proximities"`
	Hits        []namedHit       `msgpack:"hits"`
}

func main() {
	scenePath := flag.String("scene", "", "path of the YAML scene")
	format := flag.String("format", "text", "output format: text or msgpack")
	workers := flag.Int("workers", feather2d.DEFAULT_WORKERS, "number of worker goroutines")
	verbose := flag.Bool("v", false, "log debug information")
	flag.Parse()

	logger := log.New(os.Stderr, "[narrowphase] ", log.LstdFlags|log.Lmicroseconds)

	if *scenePath == "" {
		logger.Fatal("missing -scene")
	}
	if *format != "text" && *format != "msgpack" {
		logger.Fatalf("unknown format %q", *format)
	}

	s, err := scene.LoadFile(*scenePath)
	if err != nil {
		logger.Fatalf("load scene: %v", err)
	}
	if *verbose {
		logger.Printf("debug: loaded %d bodies, %d rays", len(s.Bodies), len(s.Rays))
	}

	r, err := run(s, *workers)
	if err != nil {
		logger.Fatalf("run: %v", err)
	}
	if *verbose {
		logger.Printf("debug: %d contacts, %d proximities, %d hits", len(r.Contacts), len(r.Proximities), len(r.Hits))
	}

	if *format == "msgpack" {
		err = msgpack.NewEncoder(os.Stdout).Encode(r)
	} else {
		err = writeText(os.Stdout, r)
	}
	if err != nil {
		logger.Fatalf("write report: %v", err)
	}
}

func run(s *scene.Scene, workers int) (report, error) {
	var r report
	pairs := feather2d.AllPairs(s.Bodies)

	contacts, err := feather2d.NarrowPhase(s.Detector, pairs, workers)
	if err != nil {
		return r, err
	}
	for _, c := range contacts {
		r.Contacts = append(r.Contacts, namedContact{
			BodyA:       s.Name(c.BodyA),
			BodyB:       s.Name(c.BodyB),
			Penetration: c.Penetration,
		})
	}

	proximities, err := feather2d.Distances(s.Distance, pairs, workers)
	if err != nil {
		return r, err
	}
	for _, p := range proximities {
		r.Proximities = append(r.Proximities, namedProximity{
			BodyA:      s.Name(p.BodyA),
			BodyB:      s.Name(p.BodyB),
			Separation: p.Separation,
		})
	}

	for _, ray := range s.Rays {
		hits, err := feather2d.RaycastBodies(s.Raycaster, ray.Ray, ray.MaxLength, s.Bodies)
		if err != nil {
			return r, fmt.Errorf("ray %q: %w", ray.Name, err)
		}
		for _, hit := range hits {
			r.Hits = append(r.Hits, namedHit{Ray: ray.Name, Body: s.Name(hit.Body), Raycast: hit.Raycast})
		}
	}

	return r, nil
}

func writeText(w io.Writer, r report) error {
	for _, c := range r.Contacts {
		if _, err := fmt.Fprintf(w, "contact %s %s normal=%v depth=%.6f\n",
			c.BodyA, c.BodyB, c.Penetration.Normal, c.Penetration.Depth); err != nil {
			return err
		}
	}
	for _, p := range r.Proximities {
		if _, err := fmt.Fprintf(w, "separation %s %s normal=%v distance=%.6f point1=%v point2=%v\n",
			p.BodyA, p.BodyB, p.Separation.Normal, p.Separation.Distance, p.Separation.Point1, p.Separation.Point2); err != nil {
			return err
		}
	}
	for _, h := range r.Hits {
		if _, err := fmt.Fprintf(w, "hit %s %s point=%v normal=%v distance=%.6f\n",
			h.Ray, h.Body, h.Raycast.Point, h.Raycast.Normal, h.Raycast.Distance); err != nil {
			return err
		}
	}
	return nil
}
