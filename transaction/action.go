package transaction

import (
	"github.com/near/borsh-go"
	"github.com/nearkit/near-cleaner/keys"
)

// Action indexes follow the order of the protocol enum, only DeleteAccount is built by this tool.
const (
	ActionCreateAccount borsh.Enum = iota
	ActionDeployContract
	ActionFunctionCall
	ActionTransfer
	ActionStake
	ActionAddKey
	ActionDeleteKey
	ActionDeleteAccount
)

// Balance is a little endian u128 amount of yoctoNEAR.
type Balance [16]byte

// PublicKey is the borsh layout of a key, the key type followed by the key data.
type PublicKey struct {
	KeyType uint8
	Data    keys.PublicKey
}

// Signature is the borsh layout of a signature.
type Signature struct {
	KeyType uint8
	Data    keys.Signature
}

// Action is a complex enum, exactly one variant matching Enum is serialized.
type Action struct {
	Enum           borsh.Enum `borsh_enum:"true"`
	CreateAccount  CreateAccount
	DeployContract DeployContract
	FunctionCall   FunctionCall
	Transfer       Transfer
	Stake          Stake
	AddKey         AddKey
	DeleteKey      DeleteKey
	DeleteAccount  DeleteAccount
}

type CreateAccount struct{}

type DeployContract struct {
	Code []byte
}

type FunctionCall struct {
	MethodName string
	Args       []byte
	Gas        uint64
	Deposit    Balance
}

type Transfer struct {
	Deposit Balance
}

type Stake struct {
	Stake     Balance
	PublicKey PublicKey
}

type AddKey struct {
	PublicKey PublicKey
	AccessKey AccessKey
}

type AccessKey struct {
	Nonce      uint64
	Permission AccessKeyPermission
}

type AccessKeyPermission struct {
	Enum         borsh.Enum `borsh_enum:"true"`
	FunctionCall FunctionCallPermission
	FullAccess   FullAccessPermission
}

type FunctionCallPermission struct {
	Allowance   *Balance
	ReceiverID  string
	MethodNames []string
}

type FullAccessPermission struct{}

type DeleteKey struct {
	PublicKey PublicKey
}

// DeleteAccount removes the signer account and transfers the remaining balance to BeneficiaryID.
type DeleteAccount struct {
	BeneficiaryID string
}

// NewDeleteAccountAction creates the action that deletes the receiver account.
func NewDeleteAccountAction(beneficiary string) Action {
	return Action{
		Enum:          ActionDeleteAccount,
		DeleteAccount: DeleteAccount{BeneficiaryID: beneficiary},
	}
}

func newPublicKey(pk keys.PublicKey) PublicKey {
	return PublicKey{KeyType: uint8(keys.ED25519), Data: pk}
}
