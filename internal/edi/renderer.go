// Package edi renders the X12 278 style flat file sent for an authorization decision.
package edi

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/garyjia/speedauth/internal/domain/entity"
)

// Default interchange identifiers
const (
	DefaultSenderID   = "YOURGSID"
	DefaultReceiverID = "INSURANCE"
)

const (
	segmentTerminator = "\n"
	interchangeIDLen  = 15
	dateLayout        = "20060102"
)

// Document is everything a 278 needs: the authorization and its resolved references
type Document struct {
	Authorization *entity.Authorization
	Patient       *entity.Patient
	Provider      *entity.Provider
	Insurance     *entity.Insurance

	// Date stamps ISA, GS and BHT
	Date time.Time
}

// Renderer produces 278 documents for a fixed sender/receiver pair
type Renderer struct {
	SenderID   string
	ReceiverID string
}

// NewRenderer creates a renderer, falling back to the default identifiers for empty values
func NewRenderer(senderID, receiverID string) *Renderer {
	if senderID == "" {
		senderID = DefaultSenderID
	}
	if receiverID == "" {
		receiverID = DefaultReceiverID
	}
	return &Renderer{SenderID: senderID, ReceiverID: receiverID}
}

// Render builds the document. Every reference must be present.
func (r *Renderer) Render(doc Document) (string, error) {
	if err := doc.validate(); err != nil {
		return "", err
	}

	date := doc.Date.Format(dateLayout)
	auth, patient, provider, insurance := doc.Authorization, doc.Patient, doc.Provider, doc.Insurance

	dob := ""
	if patient.DateOfBirth != nil {
		dob = patient.DateOfBirth.Compact()
	}

	w := &segmentWriter{}
	w.write("ISA", "00", "          ", "00", "          ",
		"ZZ", pad(r.SenderID, interchangeIDLen),
		"ZZ", pad(r.ReceiverID, interchangeIDLen),
		date, "00501", "000000001", "1", "P", ":")
	w.write("GS", "HS", r.SenderID, r.ReceiverID, date, "0001", "X", "005010X217")
	w.write("ST", "278", "0001")
	w.write("BHT", "0010", "13", "AUTHORIZATION_ID", date, "123456", "CH")
	w.write("NM1", "IL", "1", patient.FullName, "", "", "", "MI", patient.CustomPatientID)
	w.write("HL", "1", "", "20", "1")
	w.write("PAT", "A", "MI", dob, "")
	w.write("HI", "ABK:"+auth.ICDCodeAuth)
	w.write("SV1", "HC:"+auth.ProcedureCodeAuth, "100", "UN")
	w.write("NM1", "85", "2", provider.ProviderName, "", "", "", "XX", strconv.FormatInt(provider.ProviderID, 10))
	w.write("NM1", "PR", "2", insurance.Name)
	w.write("SE", strconv.Itoa(w.count), "0001")
	w.write("GE", "1", "0001")
	w.write("IEA", "1", "000000001")

	return w.String(), nil
}

// FileName returns authorization_edi_<id>_<suffix>_278.edi
func FileName(authorizationID int64, suffix string) string {
	return fmt.Sprintf("authorization_edi_%d_%s_278.edi", authorizationID, suffix)
}

func (d Document) validate() error {
	switch {
	case d.Authorization == nil:
		return ErrMissingAuthorization
	case d.Patient == nil:
		return ErrMissingPatient
	case d.Provider == nil:
		return ErrMissingProvider
	case d.Insurance == nil:
		return ErrMissingInsurance
	}
	return nil
}

// segmentWriter joins elements with * and counts what it has written
type segmentWriter struct {
	b     strings.Builder
	count int
}

func (w *segmentWriter) write(id string, elements ...string) {
	w.b.WriteString(id)
	for _, e := range elements {
		w.b.WriteByte('*')
		w.b.WriteString(e)
	}
	w.b.WriteString(segmentTerminator)
	w.count++
}

func (w *segmentWriter) String() string {
	return w.b.String()
}

func pad(s string, n int) string {
	if len(s) >= n {
		return s
	}
	return s + strings.Repeat(" ", n-len(s))
}
