package logger

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"runtime/debug"
	"time"

	"github.com/aws/aws-lambda-go/lambdacontext"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// sizeLimit bounds one request log line; CloudWatch rejects larger
// events.
const sizeLimit = 240 * 1024

const requestType = "request"

// requestRecord is one structured request log line.
type requestRecord struct {
	RequestID       string // AWS request id when running behind API Gateway
	Timestamp       int64
	Duration        int64
	HTTPStatusCode  int
	ErrorStackTrace string
	HTTPMethod      string
	RequestPath     string
	RequestQuery    string
	RequestBody     string
	ResponseBody    string
	Type            string `json:"type"` // marks the line as a request log downstream
}

func (record *requestRecord) String() string {
	buf := bytes.NewBufferString("")
	encoder := json.NewEncoder(buf)
	encoder.SetEscapeHTML(false)
	if err := encoder.Encode(record); err != nil {
		GetLogger().Error("failed to encode request record", zap.Error(err))
		return "{}"
	}
	return buf.String()
}

// RequestLogMiddleware logs one record per request, response body
// included, and captures panics into the record before rethrowing.
func RequestLogMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		var record *requestRecord
		respWriter := &responseRecorder{body: bytes.NewBufferString(""), ResponseWriter: c.Writer}
		c.Writer = respWriter

		defer func() {
			// printed even when a handler panicked
			if record != nil {
				fmt.Println(truncateRecord(record))
			}
		}()

		defer func() {
			if r := recover(); r != nil {
				if record != nil {
					record.HTTPStatusCode = http.StatusInternalServerError
					record.ErrorStackTrace = string(debug.Stack())
				}
				panic(r)
			}
		}()

		record = newRequestRecord(c)
		if lc, ok := lambdacontext.FromContext(c.Request.Context()); ok {
			record.RequestID = lc.AwsRequestID
		}

		c.Next()

		record.HTTPStatusCode = c.Writer.Status()
		record.Duration = time.Now().UnixMilli() - record.Timestamp
		record.ResponseBody = respWriter.body.String()
	}
}

// truncateRecord drops the biggest fields first until the encoded
// record fits the size limit.
func truncateRecord(record *requestRecord) string {
	logStr := record.String()
	if len(logStr) < sizeLimit {
		return logStr
	}
	respSize := len(record.ResponseBody)
	reqSize := len(record.RequestBody)
	if len(logStr) > sizeLimit {
		record.ResponseBody = "TRUNCATED..."
	}
	if len(logStr)-respSize > sizeLimit {
		record.RequestBody = "TRUNCATED..."
	}
	if len(logStr)-respSize-reqSize > sizeLimit {
		record.ErrorStackTrace = "TRUNCATED..."
	}
	return record.String()
}

type responseRecorder struct {
	gin.ResponseWriter
	body *bytes.Buffer
}

func (w responseRecorder) Write(b []byte) (int, error) {
	w.body.Write(b)
	return w.ResponseWriter.Write(b)
}

func (w responseRecorder) WriteString(s string) (int, error) {
	w.body.WriteString(s)
	return w.ResponseWriter.WriteString(s)
}

func newRequestRecord(c *gin.Context) *requestRecord {
	bodyBytes, _ := io.ReadAll(c.Request.Body)
	// reattach the body for the handler
	c.Request.Body = io.NopCloser(bytes.NewBuffer(bodyBytes))

	return &requestRecord{
		Timestamp:    time.Now().UnixMilli(),
		HTTPMethod:   c.Request.Method,
		RequestPath:  c.Request.RequestURI,
		RequestQuery: c.Request.URL.Query().Encode(),
		RequestBody:  string(bodyBytes),
		Type:         requestType,
	}
}
