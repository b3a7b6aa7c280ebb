package diag

import "fmt"

type Code uint16

const (
	UnknownCode Code = 0

	// IR core model
	IRInfo          Code = 1000
	IRVerifyFailed  Code = 1001
	IRDetachedOp    Code = 1002
	IROperandType   Code = 1003
	IRMissingAttr   Code = 1004
	IRBadSuccessor  Code = 1005
	IRUnknownKind   Code = 1006
	IRDuplicateKind Code = 1007

	// Immutable mirror
	ImmInfo            Code = 2000
	ImmFrozenMutation  Code = 2001
	ImmUnresolvedValue Code = 2002
	ImmUnresolvedBlock Code = 2003

	// Matcher
	MatchInfo       Code = 3000
	MatchUnboundVar Code = 3001

	// Rewrite engine
	RwInfo          Code = 4000
	RwEraseHasUses  Code = 4001
	RwResultCount   Code = 4002
	RwUnsupportedOp Code = 4003

	// Snapshots
	SnapInfo          Code = 5000
	SnapUnknownKind   Code = 5001
	SnapUnresolvedRef Code = 5002
	SnapBadSchema     Code = 5003

	// Pipeline
	PipeInfo       Code = 6000
	PipePassFailed Code = 6001
)

func (c Code) String() string {
	return fmt.Sprintf("IR%04d", uint16(c))
}
