package wizard

// Nav sihirbazın çevresindeki kabuktan istediği yönlendirmedir.
type Nav interface {
	isNav()
}

// NavStep aynı sihirbazda başka bir adıma geçildi. Slug boşsa kayıt henüz yok.
type NavStep struct {
	Slug string
	Step int
}

// NavEdit kayıt az önce oluşturuldu; düzenleme adresine geçilmeli.
type NavEdit struct {
	Slug string
	Step int
}

// NavListing son adım kaydedildi; listeye dönülmeli.
type NavListing struct{}

func (NavStep) isNav()    {}
func (NavEdit) isNav()    {}
func (NavListing) isNav() {}
