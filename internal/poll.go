package internal

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/net/html/charset"
)

// responseElement is the element name of a single clicker submission
const responseElement = "v"

// Response is one submitted answer for the current question
type Response struct {
	Device string `yaml:"device" json:"device"`
	Choice string `yaml:"choice" json:"choice"`
}

// PollResponses holds the submissions of the most recent question block
type PollResponses struct {
	Responses []Response
	Blocks    int // number of question blocks in the log
}

// Devices returns the device IDs in submission order
func (p *PollResponses) Devices() []string {
	out := make([]string, len(p.Responses))
	for i, r := range p.Responses {
		out[i] = r.Device
	}
	return out
}

// Choices returns the raw choice tokens in submission order
func (p *PollResponses) Choices() []string {
	out := make([]string, len(p.Responses))
	for i, r := range p.Responses {
		out[i] = r.Choice
	}
	return out
}

// rawLog mirrors the iClicker session layout: <ssn><p><v id=".." ans=".."/></p>...</ssn>
type rawLog struct {
	XMLName xml.Name
	Blocks  []rawBlock `xml:",any"`
}

type rawBlock struct {
	XMLName xml.Name
	Votes   []rawVote `xml:"v"`
}

type rawVote struct {
	Attrs []xml.Attr `xml:",any,attr"`
}

func (v rawVote) attr(name string) (string, bool) {
	for _, a := range v.Attrs {
		if a.Name.Local == name {
			return a.Value, true
		}
	}
	return "", false
}

// LoadPollLog reads the latest question block from a session log file
func LoadPollLog(path string) (*PollResponses, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &StorageError{Path: path, Op: "read", Err: err}
	}
	responses, err := parsePollLog(bytes.NewReader(data), path)
	if err != nil {
		return nil, err
	}
	LogDebug("Parsed %s: %d block(s), %d response(s) in last block", path, responses.Blocks, len(responses.Responses))
	return responses, nil
}

// ParsePollLog parses a session log from r
func ParsePollLog(r io.Reader) (*PollResponses, error) {
	return parsePollLog(r, "<input>")
}

func parsePollLog(r io.Reader, name string) (*PollResponses, error) {
	dec := xml.NewDecoder(r)
	dec.CharsetReader = charset.NewReaderLabel

	var doc rawLog
	if err := dec.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			err = errors.New("no element found")
		}
		return nil, &LogParseError{Path: name, Block: -1, Err: err}
	}
	if err := checkTrailing(dec); err != nil {
		return nil, &LogParseError{Path: name, Block: -1, Err: err}
	}

	if len(doc.Blocks) == 0 {
		return nil, &UnrecognizedLogFormatError{Path: name, Reason: "root element has no question blocks"}
	}
	// The first block of a real session always carries submissions.
	if len(doc.Blocks[0].Votes) == 0 {
		return nil, &UnrecognizedLogFormatError{
			Path:   name,
			Reason: "first question block <" + doc.Blocks[0].XMLName.Local + "> has no <" + responseElement + "> responses",
		}
	}

	last := len(doc.Blocks) - 1
	votes := doc.Blocks[last].Votes
	out := &PollResponses{
		Responses: make([]Response, 0, len(votes)),
		Blocks:    len(doc.Blocks),
	}
	for i, v := range votes {
		id, ok := v.attr("id")
		if !ok {
			return nil, &LogParseError{Path: name, Block: last, Record: i, Attribute: "id"}
		}
		ans, ok := v.attr("ans")
		if !ok {
			return nil, &LogParseError{Path: name, Block: last, Record: i, Attribute: "ans"}
		}
		out.Responses = append(out.Responses, Response{Device: id, Choice: ans})
	}

	return out, nil
}

// checkTrailing rejects anything after the root element other than
// whitespace, comments and processing instructions.
func checkTrailing(dec *xml.Decoder) error {
	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}
		switch t := tok.(type) {
		case xml.Comment, xml.ProcInst:
		case xml.CharData:
			if strings.TrimSpace(string(t)) != "" {
				line, _ := dec.InputPos()
				return fmt.Errorf("line %d: junk after document element", line)
			}
		default:
			line, _ := dec.InputPos()
			return fmt.Errorf("line %d: junk after document element", line)
		}
	}
}
