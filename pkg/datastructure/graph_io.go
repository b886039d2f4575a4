package datastructure

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/dsnet/compress/bzip2"
	"github.com/lintang-b-s/elenav/pkg/util"
)

// graph file (bzip2 compressed text):
//
//	<numVertices> <numEdges>
//	<osmId> <lat> <lon> <hasElevation 0|1> <elevation>     x numVertices
//	<tail> <head> <dist>                                   x numEdges
func (g *Graph) WriteGraph(filename string) error {
	f, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer f.Close()

	bz, err := bzip2.NewWriter(f, &bzip2.WriterConfig{})
	if err != nil {
		return err
	}

	if err := g.Encode(bz); err != nil {
		bz.Close()
		return err
	}
	return bz.Close()
}

// Encode writes the uncompressed graph text to w.
func (g *Graph) Encode(out io.Writer) error {
	w := bufio.NewWriter(out)

	fmt.Fprintf(w, "%d %d\n", g.NumberOfVertices(), g.NumberOfEdges())

	for vId := 0; vId < g.NumberOfVertices(); vId++ {
		v := g.vertices[vId]
		latF := strconv.FormatFloat(v.lat, 'f', -1, 64)
		lonF := strconv.FormatFloat(v.lon, 'f', -1, 64)
		eleF := strconv.FormatFloat(v.elevation, 'f', -1, 64)
		hasEle := 0
		if v.hasElevation {
			hasEle = 1
		}

		fmt.Fprintf(w, "%d %s %s %d %s\n", v.osmId, latF, lonF, hasEle, eleF)
	}

	for u := Index(0); u < Index(g.NumberOfVertices()); u++ {
		g.ForOutEdgesOf(u, func(e *OutEdge) {
			distF := strconv.FormatFloat(e.dist, 'f', -1, 64)
			fmt.Fprintf(w, "%d %d %s\n", u, e.head, distF)
		})
	}

	return w.Flush()
}

func ReadGraph(filename string) (*Graph, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	bz, err := bzip2.NewReader(f, &bzip2.ReaderConfig{})
	if err != nil {
		return nil, err
	}
	defer bz.Close()

	return DecodeGraph(bz)
}

// DecodeGraph reads the uncompressed graph text written by Encode.
func DecodeGraph(in io.Reader) (*Graph, error) {
	br := bufio.NewReader(in)

	line, err := readLine(br)
	if err != nil {
		return nil, util.WrapErrorf(err, ErrMalformedGraphFile, "read header")
	}
	header := strings.Fields(line)
	if len(header) != 2 {
		return nil, util.WrapErrorf(ErrMalformedGraphFile, ErrMalformedGraphFile, "header %q", line)
	}
	numVertices, err := strconv.Atoi(header[0])
	if err != nil {
		return nil, util.WrapErrorf(err, ErrMalformedGraphFile, "number of vertices")
	}
	numEdges, err := strconv.Atoi(header[1])
	if err != nil {
		return nil, util.WrapErrorf(err, ErrMalformedGraphFile, "number of edges")
	}

	b := NewGraphBuilderWithSize(numVertices, numEdges)

	for i := 0; i < numVertices; i++ {
		line, err := readLine(br)
		if err != nil {
			return nil, util.WrapErrorf(err, ErrMalformedGraphFile, "read vertex %d", i)
		}
		ff := strings.Fields(line)
		if len(ff) != 5 {
			return nil, util.WrapErrorf(ErrMalformedGraphFile, ErrMalformedGraphFile, "vertex %d: %q", i, line)
		}
		osmId, err := strconv.ParseInt(ff[0], 10, 64)
		if err != nil {
			return nil, util.WrapErrorf(err, ErrMalformedGraphFile, "vertex %d osm id", i)
		}
		lat, err := util.StringToFloat64(ff[1])
		if err != nil {
			return nil, util.WrapErrorf(err, ErrMalformedGraphFile, "vertex %d lat", i)
		}
		lon, err := util.StringToFloat64(ff[2])
		if err != nil {
			return nil, util.WrapErrorf(err, ErrMalformedGraphFile, "vertex %d lon", i)
		}
		ele, err := util.StringToFloat64(ff[4])
		if err != nil {
			return nil, util.WrapErrorf(err, ErrMalformedGraphFile, "vertex %d elevation", i)
		}

		var v Index
		if ff[3] == "1" {
			v = b.AddVertex(lat, lon, ele)
		} else {
			v = b.AddVertexWithoutElevation(lat, lon)
		}
		b.SetOsmId(v, osmId)
	}

	for i := 0; i < numEdges; i++ {
		line, err := readLine(br)
		if err != nil {
			return nil, util.WrapErrorf(err, ErrMalformedGraphFile, "read edge %d", i)
		}
		ff := strings.Fields(line)
		if len(ff) != 3 {
			return nil, util.WrapErrorf(ErrMalformedGraphFile, ErrMalformedGraphFile, "edge %d: %q", i, line)
		}
		tail, err := strconv.ParseUint(ff[0], 10, 32)
		if err != nil {
			return nil, util.WrapErrorf(err, ErrMalformedGraphFile, "edge %d tail", i)
		}
		head, err := strconv.ParseUint(ff[1], 10, 32)
		if err != nil {
			return nil, util.WrapErrorf(err, ErrMalformedGraphFile, "edge %d head", i)
		}
		dist, err := util.StringToFloat64(ff[2])
		if err != nil {
			return nil, util.WrapErrorf(err, ErrMalformedGraphFile, "edge %d length", i)
		}
		b.AddEdge(Index(tail), Index(head), dist)
	}

	return b.Build()
}

func readLine(br *bufio.Reader) (string, error) {
	line, err := br.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && len(line) > 0 {
		} else {
			return "", err
		}
	}
	return strings.TrimRight(line, "\r\n"), nil
}
