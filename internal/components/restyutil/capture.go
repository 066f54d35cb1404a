package restyutil

import (
	"fmt"
	"sync/atomic"

	"github.com/go-resty/resty/v2"
)

type Output interface {
	Write(id string, contents string)
}

type capture struct {
	output       Output
	redactFields []string
	idcounter    *uint64
}

// Capture writes every completed exchange of client to output, numbered in the
// order the responses arrive. Form fields named in redactFields are masked in
// the captured request bodies.
func Capture(client *resty.Client, output Output, redactFields ...string) {
	var idcounter uint64
	c := capture{output: output, redactFields: redactFields, idcounter: &idcounter}
	client.OnAfterResponse(c.onAfterResponse)
}

func (c capture) onAfterResponse(_ *resty.Client, res *resty.Response) error {
	if res.Request.RawRequest == nil || res.RawResponse == nil {
		return nil
	}
	id := atomic.AddUint64(c.idcounter, 1)
	c.output.Write(
		fmt.Sprintf("%03d.txt", id),
		formatHttpMessage(res, c.redactFields),
	)
	return nil
}
