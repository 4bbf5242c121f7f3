package models

type Customer struct {
	ID            string    `json:"_id"`
	Name          string    `json:"name"`
	ContactPerson string    `json:"contactPerson"`
	Email         string    `json:"email"`
	Phone         string    `json:"phone"`
	Address       string    `json:"address"`
	Status        OrgStatus `json:"status"`
	Projects      []string  `json:"projects"`
}

type Resource struct {
	ID    string    `json:"_id"`
	Name  string    `json:"name"`
	Files []FileRef `json:"files"`
}

type User struct {
	FirstName  string `json:"firstName"`
	LastName   string `json:"lastName"`
	Email      string `json:"email"`
	ProfilePic string `json:"profilepic"`
}
