package internal

// Recognized answer choices. Anything else counts as no choice.
const (
	ChoiceA = "A"
	ChoiceB = "B"
	ChoiceC = "C"
	ChoiceD = "D"
	ChoiceE = "E"
)

// Bucket indexes into Buckets
type Bucket int

const (
	BucketA Bucket = iota
	BucketB
	BucketC
	BucketD
	BucketE
	BucketNoChoice
	bucketCount
)

var bucketLabels = [bucketCount]string{"Choice A", "Choice B", "Choice C", "Choice D", "Choice E", "No Choice"}

// String returns the display label of the bucket
func (b Bucket) String() string {
	if b < 0 || b >= bucketCount {
		return "Unknown"
	}
	return bucketLabels[b]
}

// AllBuckets lists the buckets in display order
func AllBuckets() []Bucket {
	return []Bucket{BucketA, BucketB, BucketC, BucketD, BucketE, BucketNoChoice}
}

// BucketFor maps a raw choice token to its bucket
func BucketFor(choice string) Bucket {
	switch choice {
	case ChoiceA:
		return BucketA
	case ChoiceB:
		return BucketB
	case ChoiceC:
		return BucketC
	case ChoiceD:
		return BucketD
	case ChoiceE:
		return BucketE
	default:
		return BucketNoChoice
	}
}

// Buckets partitions participants by the choice they made on one question
type Buckets [bucketCount][]string

// Get returns the participants in bucket b
func (bs *Buckets) Get(b Bucket) []string {
	return bs[b]
}

// Total returns the number of participants across all buckets
func (bs *Buckets) Total() int {
	n := 0
	for _, members := range bs {
		n += len(members)
	}
	return n
}

// ClassifyOptions controls how unresolvable submissions are handled
type ClassifyOptions struct {
	// SkipUnknownDevices drops submissions from devices missing from the
	// roster instead of failing the cycle.
	SkipUnknownDevices bool
}

// Classification is the per-question result for one poll cycle
type Classification struct {
	Choices        map[string]string `yaml:"choices"` // participant -> raw token, "" when absent
	Buckets        Buckets           `yaml:"buckets"`
	UnknownDevices []string          `yaml:"unknown_devices,omitempty"`
}

// Choice returns the raw token recorded for a participant
func (c *Classification) Choice(participant string) (string, bool) {
	choice, ok := c.Choices[participant]
	return choice, ok
}

// Classify resolves each submission through the roster and buckets every
// roster participant exactly once. A device that answered more than once
// keeps its last answer.
func Classify(roster *Roster, poll *PollResponses, opts ClassifyOptions) (*Classification, error) {
	result := &Classification{
		Choices: make(map[string]string, roster.Len()),
	}

	order := make([]string, 0, len(poll.Responses))
	for _, resp := range poll.Responses {
		participant, ok := roster.Lookup(resp.Device)
		if !ok {
			if !opts.SkipUnknownDevices {
				return nil, &UnknownDeviceError{Device: resp.Device, Choice: resp.Choice}
			}
			LogWarn("Skipping response %q from unknown device %s", resp.Choice, resp.Device)
			result.UnknownDevices = append(result.UnknownDevices, resp.Device)
			continue
		}
		if _, seen := result.Choices[participant]; !seen {
			order = append(order, participant)
		} else {
			LogDebug("Participant %q answered again (device %s): %q", participant, resp.Device, resp.Choice)
		}
		result.Choices[participant] = resp.Choice
	}

	for _, participant := range order {
		b := BucketFor(result.Choices[participant])
		result.Buckets[b] = append(result.Buckets[b], participant)
	}

	for _, participant := range roster.Participants {
		if _, ok := result.Choices[participant]; !ok {
			result.Choices[participant] = ""
			result.Buckets[BucketNoChoice] = append(result.Buckets[BucketNoChoice], participant)
		}
	}

	return result, nil
}
