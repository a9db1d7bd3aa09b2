package transaction

// TxType tags the kind of account-chain block (§3).
type TxType uint8

const (
	Genesis TxType = iota
	Create
	Send
	Receive
	Contract
	Execute
	Update
)

var txTypeNames = [...]string{"genesis", "create", "send", "receive", "contract", "execute", "update"}

// String renders the lowercase wire name used in the submission body (§6).
func (t TxType) String() string {
	if int(t) < len(txTypeNames) {
		return txTypeNames[t]
	}
	return "unknown"
}

// Valid reports whether t is one of the seven defined variants.
func (t TxType) Valid() bool { return int(t) < len(txTypeNames) }

// TxVersion tags the account-chain protocol generation (§3).
type TxVersion uint16

const (
	VersionChaos TxVersion = iota
	VersionPanGu
	VersionNuWa
	VersionLatest
)
