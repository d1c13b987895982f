package ingest

import (
	"fmt"
	"io"
	"log/slog"
	"regexp"
	"strings"

	"github.com/aclindsa/ofxgo"
	"github.com/nmansour/fabflow/internal/model"
)

// OFXParser reads OFX/QFX bank exports as an alternate transaction source.
// OFX lines carry no running balance, so transactions from this path have an
// empty RawSourceLine and contribute nothing to ledger reconstruction; the
// classification side of the pipeline works on them unchanged.
type OFXParser struct{}

// NewOFXParser creates a new OFX parser.
func NewOFXParser() *OFXParser {
	return &OFXParser{}
}

var (
	severityRe = regexp.MustCompile(`(?i)<SEVERITY>(Info|Warn|Error)</SEVERITY>`)
	openTagRe  = regexp.MustCompile(`(?m)^(\s*<[A-Z][A-Z0-9._]*[A-Z0-9])$`)
)

// preprocess fixes common formatting issues in real-world OFX files:
// mixed-case SEVERITY values and SGML-style tags missing their closing
// bracket.
func (p *OFXParser) preprocess(content string) string {
	content = strings.TrimLeft(content, " \t\r\n")
	content = severityRe.ReplaceAllStringFunc(content, strings.ToUpper)
	content = openTagRe.ReplaceAllString(content, "$1>")
	return content
}

// ParseFile parses an OFX/QFX document into transactions.
func (p *OFXParser) ParseFile(reader io.Reader, sourceFile string) ([]model.Transaction, error) {
	content, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to read OFX file: %w", err)
	}

	resp, err := ofxgo.ParseResponse(strings.NewReader(p.preprocess(string(content))))
	if err != nil {
		return nil, fmt.Errorf("failed to parse OFX file: %w", err)
	}

	var txns []model.Transaction

	for _, msg := range resp.Bank {
		stmt, ok := msg.(*ofxgo.StatementResponse)
		if !ok || stmt.BankTranList == nil {
			continue
		}
		account := string(stmt.BankAcctFrom.AcctID)
		for _, ofxTx := range stmt.BankTranList.Transactions {
			txns = append(txns, p.convert(ofxTx, account, sourceFile))
		}
	}

	for _, msg := range resp.CreditCard {
		stmt, ok := msg.(*ofxgo.CCStatementResponse)
		if !ok || stmt.BankTranList == nil {
			continue
		}
		account := string(stmt.CCAcctFrom.AcctID)
		for _, ofxTx := range stmt.BankTranList.Transactions {
			txns = append(txns, p.convert(ofxTx, account, sourceFile))
		}
	}

	slog.Info("parsed OFX file",
		"file", sourceFile,
		"transactions", len(txns))

	return txns, nil
}

// convert maps an OFX transaction onto the model. OFX uses signed amounts;
// the sign becomes the transaction type and the amount its magnitude.
func (p *OFXParser) convert(ofxTx ofxgo.Transaction, account, sourceFile string) model.Transaction {
	amount, _ := ofxTx.TrnAmt.Float64()
	typ := model.Credit
	if amount < 0 {
		amount = -amount
		typ = model.Debit
	}

	description := string(ofxTx.Name)
	if ofxTx.Payee != nil && ofxTx.Payee.Name != "" {
		description = string(ofxTx.Payee.Name)
	}
	if description == "" {
		description = string(ofxTx.Memo)
	}

	return model.Transaction{
		Date:        ofxTx.DtPosted.Time,
		Amount:      amount,
		Description: description,
		Type:        typ,
		Account:     account,
		SourceFile:  sourceFile,
	}
}
