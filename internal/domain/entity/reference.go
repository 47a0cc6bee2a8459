package entity

// Patient is the subject of an authorization
type Patient struct {
	PatientID             int64  `json:"patientId"`
	CustomPatientID       string `json:"customPatientId"`
	FirstName             string `json:"firstName" binding:"required"`
	LastName              string `json:"lastName" binding:"required"`
	FullName              string `json:"fullName"`
	DateOfBirth           *Date  `json:"dateOfBirth"`
	Gender                string `json:"gender"`
	PrimaryInsurance      string `json:"primaryInsurance"`
	SecondaryInsurance    string `json:"secondaryInsurance"`
	PrimaryPolicyNumber   string `json:"primaryPolicyNumber"`
	SecondaryPolicyNumber string `json:"secondaryPolicyNumber"`
	ContactNumber         string `json:"contactNumber"`
	InsuranceID           string `json:"insuranceId"`
	FacilityName          string `json:"facilityName"`
	FacilityAddress       string `json:"facilityAddress"`
	SubscriberID          string `json:"subscriberId"`
}

// Provider is the treating clinician
type Provider struct {
	ProviderID      int64  `json:"providerId"`
	ProviderName    string `json:"providerName" binding:"required"`
	FirstName       string `json:"firstName"`
	LastName        string `json:"lastName"`
	NPINumber       string `json:"npiNumber"`
	ProviderType    string `json:"providerType"`
	ProviderContact string `json:"providerContact"`
	TaxID           string `json:"taxId"`
}

// Insurance is the payer an authorization is requested from
type Insurance struct {
	InsuranceID       int64  `json:"insuranceId"`
	CustomInsuranceID string `json:"customInsuranceId"`
	Name              string `json:"name" binding:"required"`
	PayerName         string `json:"payerName"`
	PayerID           string `json:"payerId"`
	PayerContact      string `json:"payerContact"`
	Address           string `json:"address"`
}

// Practice is the requesting practice
type Practice struct {
	PracticeID        int64  `json:"practiceId"`
	TaxID             string `json:"taxId"`
	NameOfPractice    string `json:"nameOfPractice" binding:"required"`
	ContactNumber     string `json:"contactNumber"`
	ContactPerson     string `json:"contactPerson"`
	Address           string `json:"address"`
	PracticeNPINumber string `json:"practiceNpiNumber"`
	Email             string `json:"email" binding:"omitempty,email"`
}

// Order is the clinical order an authorization covers
type Order struct {
	OrderID           int64  `json:"orderId"`
	OrderDate         *Date  `json:"orderDate"`
	FromDateOfService *Date  `json:"fromDateOfService"`
	ToDateOfService   *Date  `json:"toDateOfService"`
	OrderType         string `json:"orderType"`
	OrderDescription  string `json:"orderDescription"`
	OrderPriority     string `json:"orderPriority"`
	OrderICDCode      string `json:"orderIcdCode"`
	OrderCPTCode      string `json:"orderCptCode"`
	OrderStatus       string `json:"orderStatus"`
	Units             int    `json:"units" binding:"gte=0"`
	ProviderNPINumber string `json:"providerNpiNumber"`
	InsuranceID       string `json:"insuranceId"`
}
