package mython

// Method is a callable defined on a class. FormalParams does not include
// the implicit self receiver, so a zero-parameter method has an empty
// slice and is called as obj.m().
type Method struct {
	Name         string
	FormalParams []string
	Body         []Statement
}

// Class is immutable once built. The parent pointer is a non-owning
// back-reference; the parser's registry keeps every declared class alive
// for the duration of the program.
type Class struct {
	name    string
	methods []Method
	parent  *Class
	table   map[string]*Method
}

func newClass(name string, methods []Method, parent *Class) *Class {
	c := &Class{name: name, methods: methods, parent: parent}
	c.table = make(map[string]*Method, len(methods))
	for i := range c.methods {
		m := &c.methods[i]
		c.table[m.Name] = m
	}
	return c
}

func (c *Class) Name() string { return c.name }

func (c *Class) Parent() *Class { return c.parent }

// GetMethod resolves a method by name, falling through to the parent
// class on a miss. Returns nil when no class in the chain defines it.
func (c *Class) GetMethod(name string) *Method {
	if m, ok := c.table[name]; ok {
		return m
	}
	if c.parent != nil {
		return c.parent.GetMethod(name)
	}
	return nil
}

// Instance is a runtime object of a user-defined class. Fields start
// empty and are populated by field assignments.
type Instance struct {
	class  *Class
	fields *Env
}

func newInstance(c *Class) *Instance {
	return &Instance{class: c, fields: NewEnv()}
}

func (inst *Instance) Class() *Class { return inst.class }

func (inst *Instance) Fields() *Env { return inst.fields }

// HasMethod reports whether the class chain defines a method with the
// given name and exactly arity formal parameters (self not counted).
func (inst *Instance) HasMethod(name string, arity int) bool {
	m := inst.class.GetMethod(name)
	return m != nil && len(m.FormalParams) == arity
}
