package soap

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"sort"
	"strconv"
	"time"

	"github.com/beevik/etree"
)

const envelopeNS = "http://schemas.xmlsoap.org/soap/envelope/"

// Client is a minimal document-style SOAP client bound to one endpoint.
type Client struct {
	endpoint   string
	httpClient *http.Client
}

func NewClient(endpoint string, timeout time.Duration) *Client {
	return &Client{
		endpoint: endpoint,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// Invoke posts one operation envelope and decodes the reply body into a
// Reply mapping. Every failure mode is reported as a *Fault.
func (c *Client) Invoke(ctx context.Context, method string, envelope map[string]interface{}) (Reply, error) {
	payload, err := marshalEnvelope(method, envelope)
	if err != nil {
		return nil, &Fault{Code: http.StatusInternalServerError, Message: "failed to encode request envelope: " + err.Error()}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, &Fault{Code: http.StatusInternalServerError, Message: "failed to create request: " + err.Error()}
	}
	req.Header.Set("Content-Type", `text/xml; charset="utf-8"`)
	req.Header.Set("SOAPAction", method)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &Fault{Code: http.StatusServiceUnavailable, Message: err.Error()}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &Fault{Code: http.StatusBadGateway, Message: "failed to read response body: " + err.Error()}
	}

	reply, fault := unmarshalEnvelope(body, resp.StatusCode)
	if fault != nil {
		return nil, fault
	}
	return reply, nil
}

func marshalEnvelope(method string, envelope map[string]interface{}) ([]byte, error) {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)

	root := doc.CreateElement("soapenv:Envelope")
	root.CreateAttr("xmlns:soapenv", envelopeNS)

	operation := root.CreateElement("soapenv:Body").CreateElement(method)
	writeMap(operation, envelope)

	return doc.WriteToBytes()
}

func writeMap(parent *etree.Element, fields map[string]interface{}) {
	// deterministic element order keeps envelopes reproducible in logs and tests
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, key := range keys {
		writeValue(parent, key, fields[key])
	}
}

func writeValue(parent *etree.Element, name string, value interface{}) {
	switch v := value.(type) {
	case map[string]interface{}:
		writeMap(parent.CreateElement(name), v)
	case []interface{}:
		for _, elem := range v {
			writeValue(parent, name, elem)
		}
	case []map[string]interface{}:
		for _, elem := range v {
			writeMap(parent.CreateElement(name), elem)
		}
	case nil:
		parent.CreateElement(name)
	case string:
		parent.CreateElement(name).SetText(v)
	case float64:
		parent.CreateElement(name).SetText(strconv.FormatFloat(v, 'f', -1, 64))
	case int:
		parent.CreateElement(name).SetText(strconv.Itoa(v))
	case int64:
		parent.CreateElement(name).SetText(strconv.FormatInt(v, 10))
	case bool:
		parent.CreateElement(name).SetText(strconv.FormatBool(v))
	default:
		parent.CreateElement(name).SetText(stringify(v))
	}
}

func unmarshalEnvelope(body []byte, status int) (Reply, *Fault) {
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(body); err != nil {
		return nil, &Fault{Code: status, Message: "malformed reply: " + err.Error()}
	}

	soapBody := findChild(doc.Root(), "Body")
	if soapBody == nil {
		return nil, &Fault{Code: status, Message: "reply carries no body"}
	}

	if fault := findChild(soapBody, "Fault"); fault != nil {
		return nil, parseFault(fault, status)
	}
	if status != http.StatusOK {
		return nil, &Fault{Code: status, Message: http.StatusText(status)}
	}

	children := soapBody.ChildElements()
	if len(children) == 0 {
		return Reply{}, nil
	}

	reply := Reply{}
	for key, value := range readElement(children[0]) {
		reply[key] = value
	}
	return reply, nil
}

func parseFault(fault *etree.Element, status int) *Fault {
	code := status
	message := "backend fault"

	if el := findChild(fault, "faultcode"); el != nil {
		if n, err := strconv.Atoi(el.Text()); err == nil {
			code = n
		}
	}
	if el := findChild(fault, "faultstring"); el != nil {
		message = el.Text()
	}
	return &Fault{Code: code, Message: message}
}

// readElement converts an XML element into a mapping: leaf children become
// strings, nested children become sub-maps, repeated names become slices.
func readElement(el *etree.Element) map[string]interface{} {
	out := map[string]interface{}{}
	for _, child := range el.ChildElements() {
		var value interface{}
		if len(child.ChildElements()) == 0 {
			value = child.Text()
		} else {
			value = readElement(child)
		}

		if existing, ok := out[child.Tag]; ok {
			if slice, ok := existing.([]interface{}); ok {
				out[child.Tag] = append(slice, value)
			} else {
				out[child.Tag] = []interface{}{existing, value}
			}
			continue
		}
		out[child.Tag] = value
	}
	return out
}

// findChild matches a direct child by local tag name, ignoring namespaces.
func findChild(el *etree.Element, tag string) *etree.Element {
	if el == nil {
		return nil
	}
	for _, child := range el.ChildElements() {
		if child.Tag == tag {
			return child
		}
	}
	return nil
}

func stringify(v interface{}) string {
	return fmt.Sprintf("%v", v)
}
