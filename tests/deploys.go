package tests

import (
	"path"
	"testing"

	"github.com/nspcc-dev/neo-go/pkg/neotest"
	"github.com/nspcc-dev/neo-go/pkg/util"
	"github.com/nspcc-dev/neo-go/pkg/vm/stackitem"
)

const (
	tokenPath       = "../token"
	reputationPath  = "../reputation"
	certificatePath = "../certificate"
	marketPath      = "../market"
	loanPath        = "../loan"
	insurancePath   = "../insurance"
)

// settlementSuite holds hashes of the deployed contract suite together with
// the executor that owns the test chain.
type settlementSuite struct {
	e *neotest.Executor

	token       util.Uint160
	reputation  util.Uint160
	certificate util.Uint160
	market      util.Uint160
	loan        util.Uint160
	insurance   util.Uint160
}

func compileContract(t *testing.T, e *neotest.Executor, ctrPath string) *neotest.Contract {
	return neotest.CompileFile(t, e.CommitteeHash, ctrPath, path.Join(ctrPath, "config.yml"))
}

// deploySuite compiles and deploys the whole settlement suite, wiring
// contract hashes the same way a production deployment would: the token
// contract learns the settlement contract hashes, every settlement contract
// learns the token and reputation hashes.
func deploySuite(t *testing.T, repeatableClaims bool) *settlementSuite {
	e := newExecutor(t)

	ctrToken := compileContract(t, e, tokenPath)
	ctrReputation := compileContract(t, e, reputationPath)
	ctrCertificate := compileContract(t, e, certificatePath)
	ctrMarket := compileContract(t, e, marketPath)
	ctrLoan := compileContract(t, e, loanPath)
	ctrInsurance := compileContract(t, e, insurancePath)

	e.DeployContract(t, ctrReputation, nil)
	e.DeployContract(t, ctrToken,
		[]interface{}{ctrMarket.Hash, ctrLoan.Hash, ctrInsurance.Hash})
	e.DeployContract(t, ctrCertificate, []interface{}{ctrReputation.Hash})
	e.DeployContract(t, ctrMarket,
		[]interface{}{ctrToken.Hash, ctrReputation.Hash, repeatableClaims})
	e.DeployContract(t, ctrLoan, []interface{}{ctrToken.Hash, ctrReputation.Hash})
	e.DeployContract(t, ctrInsurance, []interface{}{ctrToken.Hash, ctrReputation.Hash})

	return &settlementSuite{
		e:           e,
		token:       ctrToken.Hash,
		reputation:  ctrReputation.Hash,
		certificate: ctrCertificate.Hash,
		market:      ctrMarket.Hash,
		loan:        ctrLoan.Hash,
		insurance:   ctrInsurance.Hash,
	}
}

func (s *settlementSuite) tokenInvoker() *neotest.ContractInvoker {
	return s.e.CommitteeInvoker(s.token)
}

func (s *settlementSuite) reputationInvoker() *neotest.ContractInvoker {
	return s.e.CommitteeInvoker(s.reputation)
}

func (s *settlementSuite) certificateInvoker() *neotest.ContractInvoker {
	return s.e.CommitteeInvoker(s.certificate)
}

func (s *settlementSuite) marketInvoker() *neotest.ContractInvoker {
	return s.e.CommitteeInvoker(s.market)
}

func (s *settlementSuite) loanInvoker() *neotest.ContractInvoker {
	return s.e.CommitteeInvoker(s.loan)
}

func (s *settlementSuite) insuranceInvoker() *neotest.ContractInvoker {
	return s.e.CommitteeInvoker(s.insurance)
}

// setReputation stores a record for the account and returns the composite
// the contract reported.
func (s *settlementSuite) setReputation(t *testing.T, acc neotest.Signer, github, twitter, defi, composite int64) {
	c := s.reputationInvoker().WithSigners(acc)
	c.Invoke(t, composite, "put", acc.ScriptHash(), github, twitter, defi)
}

// mintTokens seeds the account with RFI by committee.
func (s *settlementSuite) mintTokens(t *testing.T, to util.Uint160, amount int64) {
	s.tokenInvoker().Invoke(t, stackitem.Null{}, "mint", to, amount)
}

// balanceOf reads the RFI balance of the account.
func (s *settlementSuite) balanceOf(t *testing.T, acc util.Uint160, expected int64) {
	s.tokenInvoker().Invoke(t, expected, "balanceOf", acc)
}

// advanceChainToHeight adds empty blocks until the chain height reaches at
// least h.
func (s *settlementSuite) advanceChainToHeight(t *testing.T, h uint32) {
	for s.e.Chain.BlockHeight() < h {
		s.e.AddNewBlock(t)
	}
}
