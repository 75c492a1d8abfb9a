package knowledge

// Defaults returns the entries a new knowledge base file is seeded with.
func Defaults() []Entry {
	return []Entry{
		{
			Triggers: []string{"quién eres", "quien eres"},
			Answer:   "Soy Neno, tu asistente local. Puedo ayudarte con recordatorios, la hora y algunas tareas rápidas en tu equipo.",
		},
		{
			Triggers: []string{"qué puedes hacer", "que puedes hacer"},
			Answer:   "Puedo gestionar recordatorios, decirte la hora, charlar un poco y realizar algunas tareas básicas como crear documentos o buscar en la web.",
		},
		{
			Triggers: []string{"capital de españa", "capital espan"},
			Answer:   "La capital de España es Madrid.",
		},
		{
			Triggers: []string{"celsius a fahrenheit", "°c a °f", "grados celsius a fahrenheit"},
			Answer:   "Convierte °C a °F usando: (°C × 9/5) + 32. Ejemplo: 25 °C son 77 °F.",
		},
		{
			Triggers: []string{"fahrenheit a celsius", "°f a °c"},
			Answer:   "Convierte °F a °C usando: (°F − 32) × 5/9. Ejemplo: 68 °F son 20 °C.",
		},
		{
			Triggers: []string{"kilómetros a millas", "kilometros a millas", "km a millas"},
			Answer:   "1 kilómetro equivale a 0.621 millas. Multiplica los km por 0.621 para obtener millas.",
		},
		{
			Triggers: []string{"millas a kilómetros", "millas a kilometros", "mi a km"},
			Answer:   "1 milla equivale a 1.609 kilómetros. Multiplica las millas por 1.609 para obtener kilómetros.",
		},
		{
			Triggers: []string{"kilogramos a libras", "kg a lb"},
			Answer:   "1 kilogramo equivale a 2.2046 libras. Multiplica los kg por 2.2046 para obtener libras.",
		},
		{
			Triggers: []string{"libras a kilogramos", "lb a kg"},
			Answer:   "1 libra equivale a 0.4536 kg. Multiplica las libras por 0.4536 para obtener kilogramos.",
		},
		{
			Triggers: []string{"litros a mililitros", "l a ml"},
			Answer:   "1 litro equivale a 1000 mililitros. Solo multiplica los litros por 1000.",
		},
		{
			Triggers: []string{"centímetros a pulgadas", "cm a pulgadas"},
			Answer:   "1 pulgada equivale a 2.54 cm. Divide los centímetros entre 2.54 para obtener pulgadas.",
		},
		{
			Triggers: []string{"pulgadas a centímetros", "pulg a cm"},
			Answer:   "Para pasar de pulgadas a centímetros multiplica la medida en pulgadas por 2.54.",
		},
		{
			Triggers: []string{"pies a metros", "ft a metros"},
			Answer:   "1 pie equivale a 0.3048 metros. Multiplica los pies por 0.3048 para obtener metros.",
		},
		{
			Triggers: []string{"metros a pies", "m a ft"},
			Answer:   "1 metro equivale a 3.2808 pies. Multiplica los metros por 3.2808 para obtener pies.",
		},
		{
			Triggers: []string{"comida típica española", "comida tipica espanola", "plato típico", "plato tipico", "paella"},
			Answer:   "España es conocida por la paella, las tapas, la tortilla de patatas y el jamón ibérico. Cada región tiene su especialidad.",
		},
		{
			Triggers: []string{"qué son las tapas", "que son las tapas", "qué es una tapa", "que es una tapa"},
			Answer:   "Las tapas son pequeñas porciones de comida que se sirven para picar y compartir mientras se socializa, típicas en bares de toda España.",
		},
		{
			Triggers: []string{"moneda de españa", "moneda españa", "moneda española"},
			Answer:   "La moneda oficial de España es el euro (EUR) desde 2002.",
		},
		{
			Triggers: []string{"fiestas importantes en españa", "festividades en españa", "fiestas españolas"},
			Answer:   "Algunas fiestas destacadas son la Semana Santa, las Fallas de Valencia, la Feria de Abril en Sevilla y San Fermín en Pamplona.",
		},
		{
			Triggers: []string{"equipo de fútbol más laureado", "equipo de futbol mas laureado", "mejor equipo español", "real madrid o barcelona"},
			Answer:   "Históricamente, el Real Madrid es el club español con más títulos internacionales, seguido muy de cerca por el FC Barcelona.",
		},
		{
			Triggers: []string{"dónde está la sagrada familia", "donde esta la sagrada familia", "sagrada familia ubicación"},
			Answer:   "La Basílica de la Sagrada Familia está en Barcelona, en el barrio de l'Eixample. Es la obra maestra de Antoni Gaudí.",
		},
		{
			Triggers: []string{"clima en españa", "qué tiempo hace en españa", "que tiempo hace en españa"},
			Answer:   "No tengo datos en tiempo real, pero en España el clima varía: mediterráneo en la costa este, oceánico en el norte y continental en el interior.",
		},
	}
}
