package configfile

type yamlConfig struct {
	Libris struct {
		API struct {
			BaseURL   string   `yaml:"base_url"`
			Timeout   string   `yaml:"timeout"`
			RateLimit *float64 `yaml:"rate_limit"`
			Burst     *int     `yaml:"burst"`
		} `yaml:"api"`

		Cache struct {
			Driver  string `yaml:"driver"`
			Path    string `yaml:"path"`
			Masking *bool  `yaml:"masking"`
		} `yaml:"cache"`

		Log struct {
			Debug *bool  `yaml:"debug"`
			Dir   string `yaml:"dir"`
		} `yaml:"log"`
	} `yaml:"libris"`
}
