package usecases

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/lintang-b-s/elenav/pkg/util"
)

var ErrMalformedQueryFile = errors.New("usecases: malformed query file")

// ReadRouteRequestFile reads a batch of queries, one per row:
//
//	origin_lat,origin_lon,destination_lat,destination_lon,overhead,objective
//
// a header row and lines starting with '#' are skipped.
func ReadRouteRequestFile(filename string) ([]RouteRequest, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ReadRouteRequests(f)
}

func ReadRouteRequests(r io.Reader) ([]RouteRequest, error) {
	cr := csv.NewReader(r)
	cr.Comment = '#'
	cr.FieldsPerRecord = 6
	cr.TrimLeadingSpace = true

	reqs := make([]RouteRequest, 0)
	for line := 1; ; line++ {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, util.WrapErrorf(ErrMalformedQueryFile, util.ErrBadParamInput, "%v", err)
		}

		nums := make([]float64, 5)
		for i := range nums {
			nums[i], err = strconv.ParseFloat(strings.TrimSpace(record[i]), 64)
			if err != nil {
				break
			}
		}
		if err != nil {
			if line == 1 {
				// header
				continue
			}
			return nil, util.WrapErrorf(ErrMalformedQueryFile, util.ErrBadParamInput,
				"line %d: %v", line, err)
		}

		reqs = append(reqs, RouteRequest{
			OriginLat:      nums[0],
			OriginLon:      nums[1],
			DestinationLat: nums[2],
			DestinationLon: nums[3],
			Overhead:       nums[4],
			Objective:      strings.ToLower(strings.TrimSpace(record[5])),
		})
	}
	return reqs, nil
}

// String row of a batch result for logs.
func (b BatchResult) String() string {
	if b.Response == nil {
		return fmt.Sprintf("(%v,%v)->(%v,%v) error: %s", b.Request.OriginLat, b.Request.OriginLon,
			b.Request.DestinationLat, b.Request.DestinationLon, b.Error)
	}
	return fmt.Sprintf("(%v,%v)->(%v,%v) status=%d distance=%.1f gain=%.1f drop=%.1f",
		b.Request.OriginLat, b.Request.OriginLon, b.Request.DestinationLat, b.Request.DestinationLon,
		b.Response.Status, b.Response.ElevationDistance, b.Response.ElevationGain, b.Response.ElevationDrop)
}
